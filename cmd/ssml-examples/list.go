// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"

	"github.com/actions-on-google/dialogflow-ssml-go/ssml"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		dataDir  string
		showSSML bool
	)

	cmd := &cobra.Command{
		Use:   "list [example]",
		Short: "Print the examples list, or the response for one example",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadHandler(dataDir, zerolog.Nop())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, h.ExamplesList())
				return nil
			}

			resp := h.ChooseExample(args[0])
			for _, s := range resp.Segments {
				if s.Kind == ssml.MarkupSpeech && !showSSML {
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", s.Kind, s.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory overriding responses.yaml and examples.yaml")
	cmd.Flags().BoolVar(&showSSML, "ssml", true, "include the SSML segment")
	return cmd
}
