package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(resourceCmd("players", "player", []string{
		"name", "gender", "preferredHand", "ageGroup", "minAge", "maxAge",
	}))
	rootCmd.AddCommand(resourceCmd("tests", "test", []string{
		"name", "testType", "from", "to", "minPlayingTime", "maxPlayingTime",
	}))
	rootCmd.AddCommand(resourceCmd("results", "result", []string{
		"playerId", "testId", "playerName", "minScore", "maxScore", "category",
	}))
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

// resourceCmd builds "<plural> list" and "<plural> get <id>". Every filter becomes a string flag
// that is forwarded as a query parameter when set.
func resourceCmd(plural, singular string, filters []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   plural,
		Short: fmt.Sprintf("Query %s", plural),
	}

	values := make(map[string]*string, len(filters)+4)
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s with optional filters", plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for name, v := range values {
				if cmd.Flags().Changed(name) {
					params.Set(name, *v)
				}
			}
			return performGetRequest("/"+plural, params)
		},
	}
	for _, name := range append(filters, "sort", "order", "page", "limit") {
		values[name] = list.Flags().String(name, "", fmt.Sprintf("Filter or paging parameter %q", name))
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Get a single %s with its details", singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performGetRequest("/"+plural+"/"+url.PathEscape(args[0]), nil)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func performGetRequest(endpoint string, params url.Values) error {
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
