package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the mappable system fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, opt := range ganttimport.FieldOptions {
				fmt.Printf("%-22s %s\n", opt.Value, opt.Label)
			}
			return nil
		},
	}
}
