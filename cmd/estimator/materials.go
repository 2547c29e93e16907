package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Simplici0/baogia/internal/catalog"
	"github.com/Simplici0/baogia/internal/money"
)

func newMaterialsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Quản lý vật tư",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Liệt kê vật tư",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.fetch(cmd.Context())
				if err != nil {
					return err
				}
				return printCatalog(cmd.OutOrStdout(), c)
			},
		},
		&cobra.Command{
			Use:   "add <domain> <category> <name> <price>",
			Short: "Thêm vật tư",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, c := section(args)
				return a.edit(cmd, func(s *catalog.Session) error {
					i, err := s.Add(d, c)
					if err != nil {
						return err
					}
					if err := s.SetName(d, c, i, args[2]); err != nil {
						return err
					}
					return s.SetField(d, c, i, catalog.FieldPrice, args[3])
				})
			},
		},
		&cobra.Command{
			Use:   "set <domain> <category> <index> <name|price> <value>",
			Short: "Sửa vật tư",
			Args:  cobra.ExactArgs(5),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, c := section(args)
				i, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("invalid index %q", args[2])
				}
				return a.edit(cmd, func(s *catalog.Session) error {
					return s.SetField(d, c, i, catalog.Field(args[3]), args[4])
				})
			},
		},
		&cobra.Command{
			Use:   "rm <domain> <category> <index>",
			Short: "Xóa vật tư",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, c := section(args)
				i, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("invalid index %q", args[2])
				}
				return a.edit(cmd, func(s *catalog.Session) error {
					return s.Remove(d, c, i)
				})
			},
		},
	)
	return cmd
}

func section(args []string) (catalog.Domain, catalog.Category) {
	return catalog.Domain(args[0]), catalog.Category(args[1])
}

// edit runs one change in a session over the server catalog, commits it and
// prints the catalog as re-fetched after the save.
func (a *app) edit(cmd *cobra.Command, fn func(*catalog.Session) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
	defer cancel()

	client := a.client()
	base, err := client.Fetch(ctx)
	if err != nil {
		return err
	}

	sess := catalog.NewSession(base)
	if err := fn(sess); err != nil {
		return err
	}
	if err := sess.Commit(ctx, client); err != nil {
		return err
	}

	saved, err := client.Fetch(ctx)
	if err != nil {
		return err
	}
	return printCatalog(cmd.OutOrStdout(), saved)
}

func printCatalog(w io.Writer, c catalog.Catalog) error {
	for _, sec := range catalog.Sections {
		if _, err := fmt.Fprintf(w, "[%s]\n", sec); err != nil {
			return err
		}
		for i, it := range c.Items(sec.Category) {
			if _, err := fmt.Fprintf(w, "%3d  %-24s %s\n", i, it.Name, money.VND(it.Price)); err != nil {
				return err
			}
		}
	}
	return nil
}
