// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	port              int64
	env               string
	maxProcs          int64
	serviceName       string
	endpointsPath     string
	redisURL          string
	loggerConfig      LoggerConfig
	rateLimiterConfig RateLimiterConfig
}

func (c *Config) Port() int64 {
	return c.port
}

func (c *Config) Env() string {
	return c.env
}

func (c *Config) MaxProcs() int64 {
	return c.maxProcs
}

func (c *Config) ServiceName() string {
	return c.serviceName
}

func (c *Config) EndpointsPath() string {
	return c.endpointsPath
}

// RedisURL is empty when the rate limiter keeps its counters in memory.
func (c *Config) RedisURL() string {
	return c.redisURL
}

func (c *Config) LoggerConfig() LoggerConfig {
	return c.loggerConfig
}

func (c *Config) RateLimiterConfig() RateLimiterConfig {
	return c.rateLimiterConfig
}

var variables = [8]string{
	"PORT",
	"ENV",
	"DEBUG",
	"SERVICE_NAME",
	"MAX_PROCS",
	"ENDPOINTS_PATH",
	"RATE_LIMITER_MAX",
	"RATE_LIMITER_EXP_SEC",
}

var optionalVariables = [1]string{
	"REDIS_URL",
}

var numerics = [4]string{
	"PORT",
	"MAX_PROCS",
	"RATE_LIMITER_MAX",
	"RATE_LIMITER_EXP_SEC",
}

func NewConfig(logger *slog.Logger, envPath string) Config {
	err := godotenv.Load(envPath)
	if err != nil {
		logger.Error("Error loading .env file")
	}

	variablesMap := make(map[string]string)
	for _, variable := range variables {
		value := os.Getenv(variable)
		if value == "" {
			logger.Error(variable + " is not set")
			panic(variable + " is not set")
		}
		variablesMap[variable] = value
	}

	for _, variable := range optionalVariables {
		value := os.Getenv(variable)
		variablesMap[variable] = value
	}

	intMap := make(map[string]int64)
	for _, numeric := range numerics {
		value, err := strconv.ParseInt(variablesMap[numeric], 10, 0)
		if err != nil {
			logger.Error(numeric + " is not an integer")
			panic(numeric + " is not an integer")
		}
		intMap[numeric] = value
	}

	return Config{
		port:          intMap["PORT"],
		env:           variablesMap["ENV"],
		maxProcs:      intMap["MAX_PROCS"],
		serviceName:   variablesMap["SERVICE_NAME"],
		endpointsPath: variablesMap["ENDPOINTS_PATH"],
		redisURL:      variablesMap["REDIS_URL"],
		loggerConfig: NewLoggerConfig(
			strings.ToLower(variablesMap["DEBUG"]) == "true",
			variablesMap["ENV"],
			variablesMap["SERVICE_NAME"],
		),
		rateLimiterConfig: NewRateLimiterConfig(
			intMap["RATE_LIMITER_MAX"],
			intMap["RATE_LIMITER_EXP_SEC"],
		),
	}
}
