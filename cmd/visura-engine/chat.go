// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/emazzini/visura-engine/internal/chat"
	"github.com/emazzini/visura-engine/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about the indexed companies",
	Long: `Chat starts an interactive session over the company store. Questions
are answered from the indexed data; the model phrases the answers when it
is available and a plain summary is produced when it is not.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	pc, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.New(pc.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	session := chat.New(st, generator(cmd, pc.Chat.Model), pc.Chat)
	return session.Run(context.Background(), os.Stdin, os.Stdout)
}
