package conf

// Bootstrap is the gateway's full configuration tree, scanned from the yaml
// config file. Provider credentials come in through ${ENV_VAR} placeholders
// resolved at load time and are immutable afterwards.
type Bootstrap struct {
	Server      *Server      `json:"server"`
	Search      *Search      `json:"search"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Search struct {
	Provider   string   `json:"provider"`
	MaxResults int32    `json:"max_results"`
	Google     *Google  `json:"google"`
	Searxng    *SearXNG `json:"searxng"`
}

type Google struct {
	ApiKey   string `json:"api_key"`
	EngineId string `json:"engine_id"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

// Concurrency paces outbound provider calls. Rpm sets the sustained rate,
// Qps the burst.
type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
