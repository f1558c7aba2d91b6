package cli

import (
	"fmt"
	"time"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/memory"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	svc "github.com/tabtrace-labs/tabtrace-cli/internal/core/services"
)

// setupTestServices wires the commands to in-memory stores with one
// seeded file and returns a cleanup function restoring the previous
// wiring.
func setupTestServices() func() {
	content := memory.NewContentStore()
	rows := make([]domain.Row, 5)
	for i := range rows {
		rows[i] = domain.Row{fmt.Sprintf("a%d", i), fmt.Sprintf("b%d", i)}
	}
	content.AddFile(domain.DataFile{ID: "file-1", Name: "data.csv", Size: 64, CreatedAt: time.Now()},
		[]string{"a", "b"}, rows)

	mods := memory.NewModificationStore()
	annotations := memory.NewAnnotationStore()
	identity := memory.NewIdentityService(domain.Actor{ID: "u-1", DisplayName: "Dana"})

	previous := services
	SetServices(Services{
		NewSession: func() driving.EditorSession {
			return svc.NewSession(content, identity, annotations, mods, domain.EditorSettings{}, nil)
		},
		Content:       content,
		Modifications: mods,
	})

	return func() {
		SetServices(previous)
	}
}
