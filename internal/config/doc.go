// Package config provides configuration parsing for craft projects.
//
// The configuration lives in craft.json, or craft.yaml / craft.yml, at the
// project root. Values from a .env file in the same directory and from the
// process environment are applied on top.
//
// # Configuration File Structure
//
//	{
//	  "name": "docs",
//	  "templates": "templates",
//	  "strict": false,
//	  "dev": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "hotReload": true,
//	    "watch": ["templates"]
//	  },
//	  "metrics": {"enabled": true, "namespace": "craft"},
//	  "log": {"level": "info", "format": "text"},
//	  "publish": {"bucket": "my-site", "prefix": "preview", "region": "eu-west-1"}
//	}
//
// # Environment
//
//	CRAFT_DEV=1          enables dev mode and hot reload
//	CRAFT_STRICT=1       panics on diagnostics
//	CRAFT_PORT=8080      overrides dev.port
//	CRAFT_LOG_LEVEL=debug
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Dev.Port)
package config
