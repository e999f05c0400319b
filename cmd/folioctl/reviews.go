package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"folio/internal/domain/reviews"
	"folio/internal/views"

	"github.com/spf13/cobra"
)

func (c *cli) reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "List or submit reviews",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show the newest reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			section := views.NewReviewsSection(c.client(), limit, c.logger)
			if err := section.Load(ctx); err != nil {
				return failure(err, "Failed to load reviews")
			}
			c.printReviews(section.Reviews(), true)
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum number of reviews (server default when 0)")

	var draft reviews.Draft
	var avatar string
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a review for approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			section := views.NewReviewsSection(c.client(), 0, c.logger)
			section.EditDraft(func(d *reviews.Draft) {
				d.Name, d.Role, d.Content = draft.Name, draft.Role, draft.Content
				if avatar != "" {
					d.Avatar = &avatar
				}
			})
			section.SetRating(draft.Rating)

			_, err := section.Submit(ctx)
			if n := section.Notification(); n != nil {
				fmt.Fprintf(c.out, "[%s] %s\n", n.Type, n.Message)
			}
			if err != nil {
				return failure(err, "Failed to submit review. Please try again.")
			}
			return nil
		},
	}
	submit.Flags().StringVar(&draft.Name, "name", "", "your name")
	submit.Flags().StringVar(&draft.Role, "role", "", "your role or company")
	submit.Flags().StringVar(&draft.Content, "content", "", "the review text")
	submit.Flags().IntVar(&draft.Rating, "rating", reviews.DefaultRating, "stars from 1 to 5")
	submit.Flags().StringVar(&avatar, "avatar", "", "avatar image URL")

	cmd.AddCommand(list, submit)
	return cmd
}

func (c *cli) testimonialsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "testimonials",
		Short: "Show approved reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			section := views.NewTestimonialsSection(c.client(), limit, c.logger)
			section.Load(ctx)
			if err := section.Err(); err != nil {
				c.logger.Warnw("testimonials unavailable", "error", err)
			}
			c.printReviews(section.Testimonials(), false)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of testimonials (server default when 0)")
	return cmd
}

func (c *cli) printReviews(rows []reviews.Review, withStatus bool) {
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "no reviews yet")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	for _, r := range rows {
		stars := strings.Repeat("*", r.Rating) + strings.Repeat(".", reviews.MaxRating-r.Rating)
		status := ""
		if withStatus && !r.Approved {
			status = "pending"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format("2006-01-02"), r.Initial(), r.Name, r.Role, stars, status)
		fmt.Fprintf(tw, "\t\t%s\t\t\t\n", r.Content)
	}
}
