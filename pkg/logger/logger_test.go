package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/gestion-api/pkg/logger"
)

// TestNew_EstampaServicio: en entornos no-development la salida es JSON por
// línea con el campo service en cada evento.
func TestNew_EstampaServicio(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "info",
		Service: "gestion-pro",
		Writer:  &buf,
	})

	log.Info().Str("k", "v").Msg("hola")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "gestion-pro", event["service"])
	assert.Equal(t, "hola", event["message"])
	assert.Equal(t, "v", event["k"])
}

// TestComponent_AgregaCampoFijo: el sublogger de un subsistema lleva el campo
// component en cada evento sin perder el service del raíz.
func TestComponent_AgregaCampoFijo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Service: "gestion-pro",
		Writer:  &buf,
	})

	log.Component("postgres").Warn().Msg("pool saturado")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "postgres", event["component"])
	assert.Equal(t, "gestion-pro", event["service"])
}

// TestNew_NivelFiltraEventos: con nivel warn, los eventos info no se emiten.
func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Writer: &buf})

	log.Info().Msg("no debería salir")
	assert.Zero(t, buf.Len(), "info por debajo del nivel configurado")

	log.Warn().Msg("sí sale")
	assert.NotZero(t, buf.Len())
}

// TestNew_NivelDesconocidoCaeAInfo: un nivel mal escrito no rompe el
// arranque; se registra desde info.
func TestNew_NivelDesconocidoCaeAInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verboso", Writer: &buf})

	log.Debug().Msg("filtrado")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}

// TestNew_DesarrolloUsaConsola: en development la salida es legible, no JSON.
func TestNew_DesarrolloUsaConsola(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "development", Writer: &buf})

	log.Info().Msg("legible")

	var event map[string]any
	assert.Error(t, json.Unmarshal(buf.Bytes(), &event), "la salida de consola no es JSON")
	assert.Contains(t, buf.String(), "legible")
}
