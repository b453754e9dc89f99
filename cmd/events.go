/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arjohnson15/workoutapp/internal/events"
	"github.com/arjohnson15/workoutapp/internal/mq"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect workout events on the message queue",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Log workout events as they are published",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if queue == nil {
			return errors.New("MQ_BACKEND is not configured")
		}
		defer queue.Close()

		log.Infof("tailing %s", cfg.MQ.Channel)
		err = queue.Subscribe(ctx, cfg.MQ.Channel, logEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}

func logEvent(_ context.Context, msg mq.Message) error {
	event, err := events.Decode(msg)
	if err != nil {
		// Undecodable messages are acked and dropped.
		log.WithError(err).Warn("skipping message")
		return nil
	}
	log.WithFields(log.Fields{
		"type":     event.Type,
		"workout":  event.WorkoutID,
		"user":     event.UserID,
		"exercise": event.ExerciseName,
		"sets":     event.Sets,
		"volume":   event.Volume,
	}).Info(event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
