package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okText   = color.New(color.FgGreen).SprintFunc()
	badText  = color.New(color.FgRed).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report which updates respect every applicable rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rep, err := a.run(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rep.Results {
				verdict := okText("VALID  ")
				if !r.Valid {
					verdict = badText("INVALID")
				}
				fmt.Fprintf(out, "%s %s\n", verdict, join(r.Original))
				for _, v := range r.Violations {
					fmt.Fprintf(out, "        %s\n", v)
				}
			}
			fmt.Fprintf(out, "%d valid, %d invalid\n", rep.Valid, rep.Repaired+rep.Failed)
			return nil
		},
	}
}

func newRepairCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repair FILE",
		Short: "Print a corrected order for every invalid update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rep, err := a.run(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rep.Results {
				if r.Valid {
					continue
				}
				switch {
				case r.Err != nil && r.Repaired != nil:
					fmt.Fprintf(out, "%s -> %s %s\n", join(r.Original), join(r.Repaired), warnText("(partial: "+r.Err.Error()+")"))
				case r.Err != nil:
					fmt.Fprintf(out, "%s %s\n", join(r.Original), badText(r.Err.Error()))
				case r.Disagree:
					fmt.Fprintf(out, "%s -> %s %s\n", join(r.Original), join(r.Repaired), warnText("(strategies disagree)"))
				default:
					fmt.Fprintf(out, "%s -> %s\n", join(r.Original), okText(join(r.Repaired)))
				}
			}
			return nil
		},
	}
}

func newScoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "score FILE",
		Short: "Sum the middle item of valid and of repaired updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rep, err := a.run(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "valid middle sum: %d\n", rep.ValidMiddleSum)
			fmt.Fprintf(out, "repaired middle sum: %d\n", rep.RepairedMiddleSum)
			if rep.Failed > 0 {
				fmt.Fprintf(out, "%s\n", warnText(fmt.Sprintf("%d updates could not be repaired", rep.Failed)))
			}
			return nil
		},
	}
}

// join renders a sequence the way it appears in the input.
func join(seq []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}
