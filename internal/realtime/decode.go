package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/docspace/docspace/internal/domain"
)

// DecodeChange turns a change feed payload of the form
// {"operation": "...", "table": "...", "row": {...}} into a typed event
func DecodeChange(payload []byte) (domain.ChangeEvent, error) {
	if !gjson.ValidBytes(payload) {
		return domain.ChangeEvent{}, fmt.Errorf("change payload is not valid JSON")
	}
	doc := gjson.ParseBytes(payload)

	op := domain.ChangeOp(doc.Get("operation").String())
	if !op.IsValid() {
		return domain.ChangeEvent{}, fmt.Errorf("unknown change operation %q", op)
	}
	table := domain.Table(doc.Get("table").String())
	if !table.IsValid() {
		return domain.ChangeEvent{}, fmt.Errorf("unknown change table %q", table)
	}
	row := doc.Get("row")
	if !row.IsObject() {
		return domain.ChangeEvent{}, fmt.Errorf("change payload for %s has no row", table)
	}

	evt := domain.ChangeEvent{
		Op:             op,
		Table:          table,
		ContentOmitted: row.Get("content_omitted").Bool(),
		ReceivedAt:     time.Now().UTC(),
	}

	raw := []byte(row.Raw)
	var err error
	switch table {
	case domain.TableWorkspaces:
		evt.Workspace = &domain.Workspace{}
		err = json.Unmarshal(raw, evt.Workspace)
	case domain.TableCollaborators:
		evt.Collaborator = &domain.Collaborator{}
		err = json.Unmarshal(raw, evt.Collaborator)
	case domain.TableInvitations:
		evt.Invitation = &domain.Invitation{}
		err = json.Unmarshal(raw, evt.Invitation)
	case domain.TableFiles:
		evt.File = &domain.File{}
		err = json.Unmarshal(raw, evt.File)
	case domain.TableFileVersions:
		evt.FileVersion = &domain.FileVersion{}
		err = json.Unmarshal(raw, evt.FileVersion)
	}
	if err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("failed to decode %s row: %w", table, err)
	}
	return evt, evt.Validate()
}
