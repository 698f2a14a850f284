package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/kube"
)

func newKubeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kube",
		Short: "Fuzzy kubectl context and namespace switching",
	}
	cmd.AddCommand(newKubeCtxCmd())
	cmd.AddCommand(newKubeNsCmd())
	return cmd
}

func newKubeCtxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ctx [name]",
		Short: "Switch kubectl context, fuzzy-picking when no name is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			client := kube.NewClient(sess.cmd, sess.detector)

			if len(args) == 1 {
				return client.UseContext(cmd.Context(), args[0])
			}

			name, err := client.PickContext(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Switched to context %q\n", name)
			return nil
		},
	}
}

func newKubeNsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ns [name]",
		Short: "Switch the current context's namespace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			client := kube.NewClient(sess.cmd, sess.detector)

			if len(args) == 1 {
				return client.UseNamespace(cmd.Context(), args[0])
			}

			name, err := client.PickNamespace(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Switched to namespace %q\n", name)
			return nil
		},
	}
}
