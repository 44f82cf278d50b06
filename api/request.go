// Package api exposes the route planner over HTTP, websocket and AWS Lambda.
package api

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/hitroute/hitroute/raid"
	"github.com/hitroute/hitroute/raid/sheet"
)

// PlanRequest is a decoded planning request.
type PlanRequest struct {
	Targets []raid.TargetSpec
	Records []raid.DamageRecord
	Config  raid.PlannerConfig
}

// DecodePlanRequest parses a request body of the form
//
//	{"targets": [...], "hits": [...], "damage_scale": 1, "config": {...}}
//
// The config object uses the planner YAML keys and overrides defaults; unknown
// keys are rejected, and max_targets and workers may not exceed the defaults.
// damage_scale defaults to 1 (raw damage).
func DecodePlanRequest(body []byte, defaults raid.PlannerConfig) (*PlanRequest, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON body")
	}
	doc := gjson.ParseBytes(body)

	targets := doc.Get("targets")
	if !targets.IsArray() {
		return nil, fmt.Errorf("missing targets array")
	}
	hits := doc.Get("hits")
	if !hits.IsArray() {
		return nil, fmt.Errorf("missing hits array")
	}

	opts := sheet.Options{DamageScale: 1}
	if scale := doc.Get("damage_scale"); scale.Exists() {
		if scale.Float() <= 0 {
			return nil, fmt.Errorf("damage_scale must be positive, got %s", scale.Raw)
		}
		opts.DamageScale = scale.Float()
	}

	req := &PlanRequest{Config: defaults}
	var err error
	if req.Targets, err = sheet.TargetsFromJSON(targets); err != nil {
		return nil, err
	}
	if req.Records, err = sheet.HitsFromJSON(hits, opts); err != nil {
		return nil, err
	}
	if cfg := doc.Get("config"); cfg.Exists() {
		if !cfg.IsObject() {
			return nil, fmt.Errorf("config must be an object")
		}
		// JSON is a YAML subset, so the planner's YAML keys apply unchanged.
		decoder := yaml.NewDecoder(bytes.NewReader([]byte(cfg.Raw)))
		decoder.KnownFields(true)
		if err := decoder.Decode(&req.Config); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if req.Config.MaxTargets > defaults.MaxTargets {
			return nil, fmt.Errorf("config max_targets=%d exceeds the server limit of %d", req.Config.MaxTargets, defaults.MaxTargets)
		}
		if req.Config.Workers > defaults.Workers {
			return nil, fmt.Errorf("config workers=%d exceeds the server limit of %d", req.Config.Workers, defaults.Workers)
		}
	}
	return req, nil
}
