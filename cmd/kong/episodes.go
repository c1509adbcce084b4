package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maxogod/AI-Donkey-Kong/internal/platform/tui"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
)

var (
	flagEpisodesPolicy string
	flagEpisodesLimit  int
	flagEpisodesBest   bool
	flagEpisodesBrowse bool
	flagEpisodesClear  bool
)

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Show recorded episodes",
	Long: `List recorded episodes with aggregate statistics.

Examples:
  kong episodes
  kong episodes --policy climber --best
  kong episodes --browse
  kong episodes --policy random --clear`,
	RunE: runEpisodes,
}

func init() {
	episodesCmd.Flags().StringVar(&flagEpisodesPolicy, "policy", "", "Only this policy (default: all)")
	episodesCmd.Flags().IntVar(&flagEpisodesLimit, "limit", 10, "Number of episodes to list")
	episodesCmd.Flags().BoolVar(&flagEpisodesBest, "best", false, "Sort by reward instead of date")
	episodesCmd.Flags().BoolVar(&flagEpisodesBrowse, "browse", false, "Open the interactive browser")
	episodesCmd.Flags().BoolVar(&flagEpisodesClear, "clear", false, "Delete the selected episodes")
}

func runEpisodes(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening episodes database: %w", err)
	}
	defer store.Close()

	if flagEpisodesClear {
		if err := store.ClearEpisodes(flagEpisodesPolicy); err != nil {
			return err
		}
		fmt.Println("Episodes cleared.")
		return nil
	}

	if flagEpisodesBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunEpisodes(store, width, height)
	}

	var episodes []storage.Episode
	if flagEpisodesBest {
		episodes, err = store.BestEpisodes(flagEpisodesPolicy, flagEpisodesLimit)
	} else {
		episodes, err = store.RecentEpisodes(flagEpisodesPolicy, flagEpisodesLimit)
	}
	if err != nil {
		return err
	}

	title := "all policies"
	if flagEpisodesPolicy != "" {
		title = flagEpisodesPolicy
	}
	fmt.Printf("Episodes - %s\n\n", title)

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'kong run' to record some.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %6s  %5s  %6s  %-8s  %s\n", "#", "Outcome", "Reward", "Ticks", "Zones", "Best Y", "Policy", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %6s  %5s  %6s  %-8s  %s\n", "-", "-------", "------", "-----", "-----", "------", "------", "----")
	for i, e := range episodes {
		fmt.Printf("  %-4d  %-8s  %+8.3f  %6d  %5d  %6.2f  %-8s  %s\n",
			i+1, e.Outcome, e.Reward, e.Ticks, e.ZonesVisited, e.HighestY, e.Policy,
			e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	st, err := store.Stats(flagEpisodesPolicy)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d episodes: %d wins, %d deaths, %d timeouts (win rate %.1f%%)\n",
		st.Episodes, st.Wins, st.Deaths, st.Timeouts, st.WinRate()*100)
	fmt.Printf("Mean reward %+.3f, best %+.3f, mean ticks %.0f\n", st.MeanReward, st.BestReward, st.MeanTicks)
	return nil
}
