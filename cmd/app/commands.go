package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"lighthouse.app/internal/app"
	"lighthouse.app/internal/core/auth"
	"lighthouse.app/internal/core/weather"
	"lighthouse.app/pkg/errors"
)

// applicationFactory builds the client for every command
var applicationFactory = func(logOutput io.Writer) (*app.Application, error) {
	return app.NewApplicationWithOptions(app.DependencyOptions{LogOutput: logOutput})
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "lighthouse",
		Short:        "Lighthouse weather client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newExploreCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the client screens over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := applicationFactory(os.Stdout)
			if err != nil {
				slog.Error("Failed to initialize application", "error", err)
				return err
			}

			slog.Info("Configuration loaded successfully")
			slog.Info("Server configuration",
				"addr", application.Config().Server.Addr(),
				"storage", application.Config().Storage.Type.String())

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			setupGracefulShutdown(cancel, application)

			slog.Info("Starting Lighthouse client...")
			if err := application.Start(ctx); err != nil {
				slog.Error("Failed to start application", "error", err)
				return err
			}
			return nil
		},
	}
}

func setupGracefulShutdown(cancel context.CancelFunc, application *app.Application) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		slog.Info("Received shutdown signal...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := application.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during graceful shutdown", "error", err)
		}

		os.Exit(0)
	}()
}

// withApplication runs fn against a freshly loaded application whose logs go
// to stderr so stdout stays machine readable
func withApplication(cmd *cobra.Command, fn func(*app.Application) error) error {
	application, err := applicationFactory(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Warn("Error releasing resources", "error", err)
		}
	}()
	return fn(application)
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with a username and a 6 digit PIN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(application *app.Application) error {
				if application.Session().Snapshot().IsAuthenticated {
					fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s\n",
						application.Session().Snapshot().UsernameValue())
					return nil
				}
				return runLogin(cmd.Context(), application.LoginFlow(), cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

// runLogin drives the login flow from line input. A blank line goes back
// from the PIN stage; each PIN line is fed one digit at a time.
func runLogin(ctx context.Context, flow *auth.Flow, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		state := flow.State()
		switch state.Stage {
		case auth.StageUsername:
			fmt.Fprint(out, "Username: ")
		case auth.StagePIN:
			fmt.Fprintf(out, "PIN for %s (%d digits, empty line to go back): ", state.Username, state.PINLength)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errors.NewValidationError("login aborted")
		}
		line := strings.TrimSpace(scanner.Text())

		if state.Stage == auth.StageUsername {
			_, err := flow.SubmitUsername(ctx, line)
			if err != nil {
				fmt.Fprintf(out, "%s\n", errors.Message(err))
			}
			continue
		}

		if line == "" {
			flow.Back()
			continue
		}

		flow.ClearPIN()
		outcome, err := pressDigits(ctx, flow, line)
		if err != nil {
			fmt.Fprintf(out, "%s\n", errors.Message(err))
			continue
		}
		if outcome != nil {
			fmt.Fprintf(out, "Logged in as %s\n", outcome.Username)
			return nil
		}
		fmt.Fprintf(out, "The PIN has %d digits\n", auth.PINLength)
	}
}

func pressDigits(ctx context.Context, flow *auth.Flow, line string) (*auth.Outcome, error) {
	for _, r := range line {
		_, outcome, err := flow.PressDigit(ctx, string(r))
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			return outcome, nil
		}
	}
	return nil, nil
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(application *app.Application) error {
				if err := application.Session().ClearUser(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the stored session user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(application *app.Application) error {
				current := application.Session().Snapshot()
				if !current.IsAuthenticated {
					fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), current.UsernameValue())
				return nil
			})
		},
	}
}

func newExploreCommand() *cobra.Command {
	var (
		latitude  float64
		longitude float64
		language  string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Print current weather and forecasts as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(application *app.Application) error {
				if !application.Session().Snapshot().IsAuthenticated {
					return errors.NewValidationError("log in first: lighthouse login")
				}

				query := application.WeatherUseCase().DefaultQuery()
				if cmd.Flags().Changed("lat") {
					query.Latitude = latitude
				}
				if cmd.Flags().Changed("lon") {
					query.Longitude = longitude
				}
				if language != "" {
					query.Language = language
				}

				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()
				view, err := application.WeatherUseCase().Explore(ctx, query, false)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), view)
			})
		},
	}

	cmd.Flags().Float64Var(&latitude, "lat", weather.DefaultQuery.Latitude, "latitude")
	cmd.Flags().Float64Var(&longitude, "lon", weather.DefaultQuery.Longitude, "longitude")
	cmd.Flags().StringVar(&language, "lang", "", "language tag, such as fr or en")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "how long to wait for the three datasets")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
