package config

import (
	"encoding/json"
	"os"

	"github.com/pastelog/pastelog/internal/flagx"
	"github.com/pastelog/pastelog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config after parsing. Durations accept either
// strings like "10s" or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	MirrorPath          string         `json:"mirror_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	GistToken           string         `json:"gist_token"`
	SummaryAPIKey       string         `json:"summary_api_key"`
}

// parseJson overlays Config with values loaded from a JSON file, whose path
// is resolved from the -c/-config flags via flagx.JsonConfigFlags. If no
// path is given, nothing is loaded.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.MirrorPath != "" {
		cfg.MirrorPath = jc.MirrorPath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.GistToken != "" {
		cfg.GistToken = jc.GistToken
	}
	if jc.SummaryAPIKey != "" {
		cfg.SummaryAPIKey = jc.SummaryAPIKey
	}
}
