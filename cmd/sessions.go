package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().ListSessions(context.Background())
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-6s  %-11s  %s\n",
			"Session", "Started", "Turns", "Status", "Detail")
		fmt.Println(strings.Repeat("─", 100))
		for _, sess := range sessions {
			fmt.Printf("%-36s  %-19s  %-6d  %-11s  %s\n",
				sess.SessionID,
				sess.StartedAt.Local().Format("2006-01-02 15:04:05"),
				sess.Turns,
				sess.LastStatus,
				sess.Detail,
			)
		}
		return nil
	},
}

var sessionsTurnsCmd = &cobra.Command{
	Use:   "turns <session-id>",
	Short: "Show the turn-by-turn record for one session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		turns, err := s.EventRepo().ListTurns(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("query turns: %w", err)
		}
		if len(turns) == 0 {
			fmt.Println("No turns recorded for this session.")
			return nil
		}

		fmt.Printf("%-4s  %-14s  %-8s  %6s  %6s  %6s  %6s  %s\n",
			"#", "Skill", "Level", "Base", "Time", "Gap", "Final", "Flags")
		fmt.Println(strings.Repeat("─", 80))

		var total float64
		for _, t := range turns {
			var flags []string
			if t.UsedFallback {
				flags = append(flags, "offline")
			}
			if t.Critical {
				flags = append(flags, "critical")
			}
			fmt.Printf("%-4d  %-14s  %-8s  %6.2f  %6.1f  %6.2f  %6.2f  %s\n",
				t.TurnIndex+1,
				truncateModel(t.Skill, 14),
				t.Difficulty,
				t.BaseScore,
				t.TimePenalty,
				t.GapPenalty,
				t.FinalScore,
				strings.Join(flags, ","),
			)
			total += t.FinalScore
		}
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("Average final score: %.2f over %d turns\n", total/float64(len(turns)), len(turns))
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsTurnsCmd)
}
