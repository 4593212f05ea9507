package verifier

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/busebalkan99/design-checklist-vercel/internal/config"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// Build creates the verifier described by cfg.
func Build(ctx context.Context, cfg config.VerifierConfig, sink core.EventSink) (core.Verifier, error) {
	switch cfg.Type {
	case config.VerifierUserInfo, "":
		var opts UserInfoOptions
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("decoding userinfo verifier options: %w", err)
		}
		return NewUserInfo(config.VerifierUserInfo, opts, cfg.Timeout, sink), nil
	case config.VerifierOIDC:
		var opts OIDCOptions
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("decoding oidc verifier options: %w", err)
		}
		return NewOIDC(ctx, config.VerifierOIDC, opts, cfg.Timeout, sink)
	case config.VerifierStatic:
		var opts StaticOptions
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("decoding static verifier options: %w", err)
		}
		return NewStatic(config.VerifierStatic, opts), nil
	default:
		return nil, fmt.Errorf("unknown verifier type %q", cfg.Type)
	}
}
