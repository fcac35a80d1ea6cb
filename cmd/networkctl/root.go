package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"network_registry/internal/app/port"
	"network_registry/internal/app/service"
	"network_registry/internal/domain/entity"
	"network_registry/internal/infrastructure/addressparams"
	networkdefinition "network_registry/internal/infrastructure/network/definition"
	"network_registry/internal/infrastructure/networkcodec"
	"network_registry/internal/infrastructure/networkloader"
	"network_registry/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	remoteURL    string
	overrideFile string
	overrideDir  string
	timeout      time.Duration
	debug        bool
	noColor      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "networkctl",
		Short: "Inspect and validate network definitions",
		Long: `A CLI tool for inspecting the network definitions known to network_registry.
Bundled definitions can be layered with a remote document, an override file and
an override directory, exactly as the service does.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			if opts.debug {
				logger.InitSlog("DEBUG")
			} else {
				logger.InitSlog("WARN")
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.remoteURL, "remote", "", "URL of a networks document layered over the bundled one")
	flags.StringVarP(&opts.overrideFile, "overrides", "o", "", "Networks document on disk layered over the bundled one")
	flags.StringVarP(&opts.overrideDir, "override-dir", "d", "", "Directory of <network>.json records")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout for loading networks")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug mode with extra information")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newEndpointsCmd(opts),
		newParamsCmd(opts),
		newValidateCmd(),
	)
	return rootCmd
}

func (o *rootOptions) loadService(ctx context.Context) (port.NetworkService, error) {
	zapLogger := zap.NewNop()
	if o.debug {
		z, err := logger.NewZap("debug")
		if err != nil {
			return nil, err
		}
		zapLogger = z
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	loader := networkloader.NewLoader(networkloader.Options{
		Bundled:       networkdefinition.BundledDocument,
		RemoteURL:     o.remoteURL,
		RemoteTimeout: o.timeout,
		OverrideFile:  o.overrideFile,
		OverrideDir:   o.overrideDir,
	}, zapLogger, nil)
	table, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load networks: %w", err)
	}

	appLogger := logger.NewSlogAdapter()
	provider := networkdefinition.NewNetworkDefinitionProvider(appLogger, table)
	return service.NewNetworkService(provider, appLogger, nil), nil
}

func typeColor(t entity.NetworkType) *color.Color {
	switch {
	case t.IsLiquid():
		return color.New(color.FgCyan)
	case t.IsLightning():
		return color.New(color.FgYellow)
	case t.IsMainnet():
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range svc.ListNetworks() {
				fmt.Fprintf(out, "%-20s %s %-10s %s\n",
					s.Network, typeColor(s.Type).Sprintf("%-18s", s.Type), s.ServerType, s.Name)
			}
			return nil
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <network>",
		Short: "Print the full record of a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}
			def, err := svc.GetNetwork(args[0])
			if err != nil {
				return err
			}
			data, err := networkcodec.EncodeIndent(def)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newEndpointsCmd(opts *rootOptions) *cobra.Command {
	var useTor bool
	cmd := &cobra.Command{
		Use:   "endpoints <network>",
		Short: "Print the service endpoints of a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}
			endpoints, err := svc.ResolveEndpoints(args[0], useTor)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, kind := range entity.EndpointKinds {
				url, ok := endpoints[kind]
				if !ok {
					fmt.Fprintf(out, "%-15s %s\n", kind, color.New(color.Faint).Sprint("(not configured)"))
					continue
				}
				fmt.Fprintf(out, "%-15s %s\n", kind, url)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useTor, "tor", false, "Prefer onion endpoints where configured")
	return cmd
}

func newParamsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "params <network>",
		Short: "Print the address encoding parameters of a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := svc.AddressParams(args[0])
			if err != nil {
				return err
			}
			printParams(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func printParams(out io.Writer, s entity.AddressSummary) {
	fmt.Fprintf(out, "network:       %s (%s)\n", s.Network, s.Family)
	fmt.Fprintf(out, "bech32 hrp:    %s\n", s.Bech32HRP)
	if s.Family == entity.AddressFamilyElements {
		fmt.Fprintf(out, "blech32 hrp:   %s\n", s.Blech32HRP)
		fmt.Fprintf(out, "confidential:  %d\n", s.ConfidentialPrefix)
		fmt.Fprintf(out, "policy asset:  %s\n", s.PolicyAsset)
	}
	fmt.Fprintf(out, "bip21 prefix:  %s\n", s.BIP21Prefix)
	fmt.Fprintf(out, "p2pkh version: %d\n", s.PubKeyHashAddrID)
	fmt.Fprintf(out, "p2sh version:  %d\n", s.ScriptHashAddrID)
	fmt.Fprintf(out, "wif prefix:    %d\n", s.PrivateKeyID)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Decode a networks document and report each entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen).SprintFunc()
			warn := color.New(color.FgYellow).SprintFunc()
			fail := color.New(color.FgRed).SprintFunc()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			table, err := networkcodec.DecodeTable(data)
			if err != nil {
				fmt.Fprintf(out, "%s %s: %v\n", fail("[FAIL]"), args[0], err)
				return err
			}

			keys := make([]string, 0, len(table))
			for key := range table {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			warnings := 0
			for _, key := range keys {
				def := table[key]
				var problems []string
				if def.ServerType != "" && !def.ServerType.Valid() {
					problems = append(problems, fmt.Sprintf("unknown server type %q", def.ServerType))
				}
				if _, err := addressparams.Describe(def); err != nil {
					problems = append(problems, err.Error())
				}
				if len(problems) == 0 {
					fmt.Fprintf(out, "%s %s (%s)\n", ok("[OK]"), key, def.Type)
					continue
				}
				warnings++
				for _, p := range problems {
					fmt.Fprintf(out, "%s %s: %s\n", warn("[WARN]"), key, p)
				}
			}
			fmt.Fprintf(out, "%d networks, %d with warnings\n", len(keys), warnings)
			return nil
		},
	}
}
