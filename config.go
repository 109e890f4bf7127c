// config.go

package main

import "fmt"

// Config is read from the environment at startup. Everything has a
// default so a bare `go run .` just works.
type Config struct {
	Host           string `env:"HOST,default=0.0.0.0"`
	Port           int    `env:"PORT,default=3000"`
	TimerSeconds   int    `env:"TIMER_SECONDS,default=30"`
	SendBufferSize int    `env:"SEND_BUFFER_SIZE,default=16"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
