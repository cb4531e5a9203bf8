package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"deepspace-navigator/internal/export"
	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/server"
)

var (
	planTarget int
	planExport string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		exporter, err := newExporter()
		if err != nil {
			return err
		}
		if exporter == nil {
			logger.Warn("export disabled, no passphrase configured")
		}
		logger.Info("scenarios loaded", "root", repo.Root(), "groups", len(repo.Groups()), "scenarios", repo.Len())

		srv := server.New(server.Options{
			Repository:  repo,
			Planner:     newPlanner(),
			Exporter:    exporter,
			Logger:      logger,
			CORSOrigins: cfg.Server.CORSOrigins,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <group> <number>",
	Short: "Plan a stored scenario and print the route",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("scenario number %q is not a number", args[1])
		}
		repo, err := openRepository()
		if err != nil {
			return err
		}
		s, err := repo.Load(args[0], n)
		if err != nil {
			return err
		}

		res, err := newPlanner().PlanTo(s, planTarget)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, repo.Label(n))
		fmt.Fprintf(out, "Allowed detection: %v miles\n", s.AllowedDetection)
		fmt.Fprintf(out, "Graph: %d nodes, %d edges\n", res.Graph.NodeCount(), res.Graph.EdgeCount())
		fmt.Fprintf(out, "Calculation time: %v\n", res.Elapsed)
		if !res.Found {
			fmt.Fprintln(out, "No path returned, target is unreachable")
			return nil
		}
		fmt.Fprintf(out, "Length: %.6f\n", res.Length)
		fmt.Fprintln(out, formatPath(res.Path))

		if planExport == "" {
			return nil
		}
		exporter, err := newExporter()
		if err != nil {
			return err
		}
		if exporter == nil {
			return errors.New("export requested but no passphrase configured")
		}
		artifact, err := exporter.Export(res.Path, res.Elapsed)
		if err != nil {
			return err
		}
		if err := os.WriteFile(planExport, []byte(artifact), 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(out, "Exported to %s (suggested name %s)\n", planExport, export.Filename(n))
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List stored scenarios by group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, g := range repo.Groups() {
			fmt.Fprintf(out, "%s:\n", g.Name)
			for _, e := range g.Scenarios {
				fmt.Fprintf(out, "  %s\n", e.Label)
			}
		}
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decrypt an exported route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := newExporter()
		if err != nil {
			return err
		}
		if exporter == nil {
			return errors.New("no export passphrase configured")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		payload, err := exporter.Decrypt(string(data))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	planCmd.Flags().IntVarP(&planTarget, "target", "t", 0, "index of the target to plan to")
	planCmd.Flags().StringVarP(&planExport, "export", "o", "", "write the encrypted route to this file")
}

// formatPath renders a route as "(x, y), (x, y), ..."
func formatPath(path []geometry.Point) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("(%v, %v)", p.X, p.Y)
	}
	return strings.Join(parts, ", ")
}
