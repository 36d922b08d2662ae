package config

import (
	"fmt"
	"time"
)

type Sessions struct {
	Limit       int
	IdleTimeout time.Duration
	SweepEvery  time.Duration
}

func NewSessions() (*Sessions, error) {
	limit, err := lookupInt("SESSION_LIMIT", 1024)
	if err != nil {
		return nil, err
	}
	idle, err := lookupDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("SESSION_LIMIT must be positive, got %d", limit)
	}
	if idle <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %s", idle)
	}

	sweep := idle / 4
	if sweep < time.Second {
		sweep = time.Second
	}

	return &Sessions{
		Limit:       limit,
		IdleTimeout: idle,
		SweepEvery:  sweep,
	}, nil
}
