package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Chain  Chain  `yaml:"chain"`
}

type Server struct {
	Bind          string `yaml:"bind"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

// Chain configures the on-chain action tracker mirror. Leave Enabled false
// to run without a node.
type Chain struct {
	Enabled         bool   `yaml:"enabled"`
	RPCEndpoint     string `yaml:"rpcEndpoint"`
	ChainID         int64  `yaml:"chainId"`
	PrivateKey      string `yaml:"privatekey"`
	ContractAddress string `yaml:"contractAddress"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Bind == "" {
		config.Server.Bind = ":8000"
	}

	return config, nil
}
