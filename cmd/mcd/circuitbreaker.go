package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mcd "github.com/llehouerou/go-mcd"
)

var errBreached = errors.New("circuit breaker rule in breach")

type triggerResult struct {
	Rule     string `json:"rule"`
	Breached bool   `json:"breached"`
}

func newCircuitBreakerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "circuit-breaker",
		Aliases: []string{"cb"},
		Short:   "Run circuit breaker rules",
	}

	var (
		poll         mcd.PollOptions
		failOnBreach bool
	)
	trigger := &cobra.Command{
		Use:   "trigger RULE_UUID",
		Short: "Run a circuit breaker rule and wait for the result",
		Long: `Run a circuit breaker rule, wait until the run completes and print
whether the rule is in breach. With --fail-on-breach a breach exits non-zero,
which lets a pipeline stop before consuming bad data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("rule: %w", err)
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			breached, err := c.TriggerCircuitBreaker(cmd.Context(), rule, poll)
			if err != nil {
				return err
			}
			if err := a.print(triggerResult{Rule: rule.String(), Breached: breached}); err != nil {
				return err
			}
			if breached && failOnBreach {
				return errBreached
			}
			return nil
		},
	}
	trigger.Flags().DurationVar(&poll.Interval, "interval", mcd.DefaultPollInterval, "time between state checks")
	trigger.Flags().DurationVar(&poll.Timeout, "timeout", mcd.DefaultPollTimeout, "give up after this long")
	trigger.Flags().BoolVar(&failOnBreach, "fail-on-breach", false, "exit non-zero when the rule is in breach")

	cmd.AddCommand(trigger)
	return cmd
}
