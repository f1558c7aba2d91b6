package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/memory"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/services"
)

func TestPorts_Validate_Success(t *testing.T) {
	session := services.NewSession(memory.NewContentStore(), nil,
		memory.NewAnnotationStore(), memory.NewModificationStore(),
		domain.EditorSettings{}, nil)

	ports := &Ports{Session: session}

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingSession(t *testing.T) {
	ports := &Ports{}

	assert.ErrorIs(t, ports.Validate(), ErrMissingSession)
}
