package api

import (
	"context"
	"fmt"
	"net/http"
)

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &out); err != nil {
		return nil, fmt.Errorf("signing up: %w", err)
	}
	return &out, nil
}
