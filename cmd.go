package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Zachkp/resume/internal/config"
	"github.com/Zachkp/resume/internal/contact"
	"github.com/Zachkp/resume/internal/duration"
	"github.com/Zachkp/resume/internal/i18n"
	"github.com/Zachkp/resume/internal/logger"
	"github.com/Zachkp/resume/internal/metrics"
	"github.com/Zachkp/resume/internal/resume"
	"github.com/Zachkp/resume/internal/server"
	"github.com/Zachkp/resume/internal/store"
)

const cleanupInterval = 24 * time.Hour

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "resume",
		Short:        "Personal résumé site with experience durations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}

	root.AddCommand(serve, newExperienceCmd(&cfgFile))
	return root
}

func newExperienceCmd(cfgFile *string) *cobra.Command {
	var (
		lang       string
		at         string
		resumePath string
	)

	cmd := &cobra.Command{
		Use:   "experience",
		Short: "Print total experience and the skill ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := i18n.Parse(lang)
			if !ok {
				return fmt.Errorf("unsupported language %q", lang)
			}
			now, err := duration.ParseDate(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			var clock duration.Clock = duration.SystemClock{}
			if !now.IsZero() {
				clock = duration.FixedClock(now)
			}

			if resumePath == "" {
				cfg, err := config.Load(*cfgFile)
				if err != nil {
					return err
				}
				resumePath = cfg.ResumePath
			}
			r, err := loadResume(resumePath)
			if err != nil {
				return err
			}
			calc := duration.NewCalculator(clock)
			if err := r.Check(calc); err != nil {
				return err
			}
			return printExperience(cmd.OutOrStdout(), resume.NewBuilder(r, calc), l)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", string(i18n.Default), "output language (tr or en)")
	cmd.Flags().StringVar(&at, "at", "", "compute as of this date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&resumePath, "resume", "", "résumé yaml file, default is RESUME_PATH or the embedded one")
	return cmd
}

func printExperience(w io.Writer, b *resume.Builder, l i18n.Locale) error {
	experiences, err := b.Experiences(l, "")
	if err != nil {
		return err
	}
	skills, err := b.Skills(l, "")
	if err != nil {
		return err
	}
	total, err := b.TotalExperience(l)
	if err != nil {
		return err
	}

	jobs := tablewriter.NewWriter(w)
	jobs.Header("Company", "Position", "Period", "Duration")
	for _, e := range experiences {
		if err := jobs.Append(e.Company, e.Position, e.Period, e.Duration); err != nil {
			return err
		}
	}
	if err := jobs.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	ranking := tablewriter.NewWriter(w)
	ranking.Header("Skill", "Duration", "Months", "Share")
	for _, s := range skills {
		if err := ranking.Append(s.Skill, s.Duration, strconv.Itoa(s.Months), strconv.Itoa(s.Percent)+"%"); err != nil {
			return err
		}
	}
	if err := ranking.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	color.New(color.FgGreen, color.Bold).Fprintf(w, "%s: %s\n", i18n.T(l, "experience.total"), total)
	return nil
}

func runServe(ctx context.Context, cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogFormat, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	r, err := loadResume(cfg.ResumePath)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	calc := duration.NewCalculator(duration.SystemClock{})
	if err := r.Check(calc); err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	builder := resume.NewBuilder(r, calc)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	if months, err := builder.TotalMonths(); err == nil {
		m.SetExperienceMonths(months)
	}

	if cfg.DevAdmin() {
		logger.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, using development credentials")
	}
	if cfg.SMTP.User == "" || cfg.SMTP.To == "" {
		logger.Warn("SMTP_USER or TO_EMAIL not set, contact form submissions will only be stored")
	}

	limiter := server.NewRateLimiter(cfg.ContactRate, cfg.ContactBurst)
	srv, err := server.New(server.Options{
		Builder:          builder,
		Store:            st,
		Mailer:           contact.NewSMTPMailer(cfg.SMTP),
		Metrics:          m,
		Limiter:          limiter,
		AdminUsername:    cfg.AdminUsername,
		AdminPassword:    cfg.AdminPassword,
		AdminSecret:      cfg.AdminSecret,
		VisitorRetention: cfg.VisitorRetention,
		StaticDir:        existingDir("static"),
		ImagesDir:        existingDir("images"),
	})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	go cleanupLoop(ctx, srv, limiter)

	return srv.Run(cfg.Addr())
}

// cleanupLoop enforces visitor retention at startup and then daily.
func cleanupLoop(ctx context.Context, srv *server.Server, limiter *server.RateLimiter) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		if _, err := srv.CleanupVisitors(ctx); err != nil {
			logger.Error("privacy cleanup failed", "error", err)
		}
		limiter.Cleanup(time.Hour)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func existingDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return ""
}
