package config

import "github.com/caarlos0/env/v11"

func LoadServerConfig() (ServerConfig, error) {
	return env.ParseAs[ServerConfig]()
}

func LoadClientConfig() (ClientConfig, error) {
	return env.ParseAs[ClientConfig]()
}

func LoadExporterConfig() (ExporterConfig, error) {
	return env.ParseAs[ExporterConfig]()
}
