// Package postgres catálogo de productos persistido en PostgreSQL (pgx v5).
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pandastore/facturacion/pkg/config"
)

// El catálogo es de solo lectura salvo el seed, basta un pool chico.
const (
	maxConns        = 5
	minConns        = 1
	maxConnLifetime = time.Hour
	maxConnIdleTime = 15 * time.Minute
	fallbackDNS     = "8.8.8.8:53"
)

var errNoIPv4 = errors.New("sin dirección IPv4")

// NewPool abre el pool con la configuración de la app y hace ping.
// El host se fuerza a IPv4 cuando es posible (contenedores sin IPv6).
func NewPool(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	if cfg.DatabaseURL != "" {
		dsn = urlWithIPv4(ctx, cfg.DatabaseURL)
	} else if ip, err := lookupIPv4(ctx, cfg.Host); err == nil {
		c := cfg
		c.Host = ip
		dsn = c.DSN()
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolCfg.ConnConfig.DialFunc = dialIPv4
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones.
	poolCfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("conectado a PostgreSQL")
	return pool, nil
}

// dialIPv4 intenta tcp4 contra la IPv4 del host; si no la hay, dial normal.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := lookupIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// lookupIPv4 resuelve host a IPv4: literal, resolver del sistema y por último DNS público.
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", errNoIPv4
	}
	if ip, err := firstIPv4(ctx, net.DefaultResolver, host); err == nil {
		return ip, nil
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", fallbackDNS)
		},
	}
	return firstIPv4(ctx, public, host)
}

func firstIPv4(ctx context.Context, r *net.Resolver, host string) (string, error) {
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", errNoIPv4
}

// urlWithIPv4 sustituye el hostname de la URL por su IPv4; si algo falla, la URL queda igual.
func urlWithIPv4(ctx context.Context, raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ip, err := lookupIPv4(ctx, u.Hostname())
	if err != nil {
		return raw
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
