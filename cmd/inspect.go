package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"odfuzzer/metadata"
	"odfuzzer/property"
)

// newInspectCmd creates the 'inspect' subcommand
func newInspectCmd() *cobra.Command {
	var entityFilter string

	cmd := &cobra.Command{
		Use:   "inspect <metadata-file>",
		Short: "Inspect a metadata document",
		Long:  "Parse an EDMX metadata document and list its entity sets with their query capabilities and properties.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := metadata.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to parse metadata: %w", err)
			}
			for _, set := range service.EntitySets {
				if entityFilter != "" && set.Name != entityFilter {
					continue
				}
				renderEntitySet(set)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&entityFilter, "entity-set", "e", "", "Show only the named entity set")

	return cmd
}

func renderEntitySet(set *metadata.EntitySet) {
	headerColor.Fprintf(os.Stdout, "%s", set.Name)
	infoColor.Fprintf(os.Stdout, " (%s)\n", set.EntityTypeName)
	fmt.Printf("  capabilities: %s\n", strings.Join(capabilities(set), ", "))
	for _, p := range set.Properties {
		marker := " "
		if p.Filterable {
			marker = "*"
		}
		line := fmt.Sprintf("  %s %-30s %s", marker, p.Name, p.Type)
		if p.FilterRestriction != property.RestrictionNone {
			line += fmt.Sprintf(" [%s]", p.FilterRestriction)
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func capabilities(set *metadata.EntitySet) []string {
	var caps []string
	if set.Searchable {
		caps = append(caps, "searchable")
	}
	if set.Topable {
		caps = append(caps, "topable")
	}
	if set.Pageable {
		caps = append(caps, "pageable")
	}
	if set.RequiresFilter {
		caps = append(caps, "requires-filter")
	}
	if len(caps) == 0 {
		caps = append(caps, "none")
	}
	return caps
}
