package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"folio/internal/apperr"
	"folio/internal/client"
	"folio/internal/env"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	out     io.Writer
	apiURL  string
	user    string
	pass    string
	timeout time.Duration
	verbose bool
	logger  *zap.SugaredLogger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Command line client for the folio API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				c.logger = l.Sugar()
			} else {
				c.logger = zap.NewNop().Sugar()
			}
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.apiURL, "api", env.GetString("FOLIO_API_URL", "http://localhost:8080"), "base URL of the folio API")
	root.PersistentFlags().StringVar(&c.user, "user", env.GetString("FOLIO_ADMIN_USER", ""), "basic auth user for admin commands")
	root.PersistentFlags().StringVar(&c.pass, "pass", env.GetString("FOLIO_ADMIN_PASS", ""), "basic auth password for admin commands")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		c.reviewsCmd(),
		c.testimonialsCmd(),
		c.themeCmd(),
		c.contactCmd(),
	)
	return root
}

func (c *cli) client() *client.Client {
	opts := []client.Option{client.WithHTTPClient(&http.Client{Timeout: c.timeout})}
	if c.user != "" {
		opts = append(opts, client.WithBasicAuth(c.user, c.pass))
	}
	return client.New(c.apiURL, opts...)
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

// failure turns err into the message a visitor would see in the banner.
func failure(err error, fallback string) error {
	return errors.New(apperr.UserMessage(err, fallback))
}
