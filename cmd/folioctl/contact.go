package main

import (
	"fmt"
	"text/tabwriter"

	"folio/internal/domain/contact"

	"github.com/spf13/cobra"
)

func (c *cli) contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send contact messages or read the inbox",
	}

	var in contact.Input
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message through the contact form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			msg, err := c.client().SendContact(ctx, in)
			if err != nil {
				return failure(err, contact.FailedMessage)
			}
			fmt.Fprintln(c.out, msg)
			return nil
		},
	}
	send.Flags().StringVar(&in.Name, "name", "", "your name")
	send.Flags().StringVar(&in.Email, "email", "", "reply address")
	send.Flags().StringVar(&in.Message, "message", "", "message text")

	var unread bool
	var page, limit int
	inbox := &cobra.Command{
		Use:   "inbox",
		Short: "List received messages (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			box, err := c.client().ContactInbox(ctx, unread, page, limit)
			if err != nil {
				return failure(err, "could not read the inbox")
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, m := range box.Messages {
				mark := " "
				if !m.Read {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email)
			}
			tw.Flush()
			fmt.Fprintf(c.out, "page %d of %d, %d messages\n", box.Pagination.Page, box.Pagination.TotalPages, box.Pagination.Total)
			return nil
		},
	}
	inbox.Flags().BoolVar(&unread, "unread", false, "only unread messages")
	inbox.Flags().IntVar(&page, "page", 1, "page number")
	inbox.Flags().IntVar(&limit, "limit", 0, "page size")

	read := &cobra.Command{
		Use:   "read ID",
		Short: "Mark a message as read (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			if err := c.client().MarkContactRead(ctx, args[0]); err != nil {
				return failure(err, "could not mark the message read")
			}
			fmt.Fprintln(c.out, "marked as read")
			return nil
		},
	}

	cmd.AddCommand(send, inbox, read)
	return cmd
}
