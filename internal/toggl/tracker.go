package toggl

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iburimskiy/sketchdeck/internal/settings"
)

// Tracker records practice time as Toggl entries in one workspace.
type Tracker struct {
	client    *Client
	workspace int64
	now       func() time.Time
}

// NewTracker returns a tracker bound to workspace.
func NewTracker(client *Client, workspace int64) *Tracker {
	return &Tracker{client: client, workspace: workspace, now: time.Now}
}

// Start opens a running entry and returns its id as the handle.
func (t *Tracker) Start(ctx context.Context, description string) (string, error) {
	entry, err := t.client.StartEntry(ctx, t.workspace, description, t.now())
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(entry.ID, 10), nil
}

// Stop closes the entry identified by handle.
func (t *Tracker) Stop(ctx context.Context, handle string) error {
	id, err := strconv.ParseInt(handle, 10, 64)
	if err != nil {
		return fmt.Errorf("toggl: invalid entry handle %q: %w", handle, err)
	}
	_, err = t.client.StopEntry(ctx, t.workspace, id)
	return err
}

// ResolveWorkspace fills s.TogglWorkspaceID from the first workspace of the
// account when it is not yet known. It reports whether s changed.
func ResolveWorkspace(ctx context.Context, client *Client, s *settings.Settings) (bool, error) {
	if s.TogglWorkspaceID > 0 {
		return false, nil
	}
	workspaces, err := client.Workspaces(ctx)
	if err != nil {
		return false, err
	}
	if len(workspaces) == 0 {
		return false, ErrNoWorkspace
	}
	s.TogglWorkspaceID = workspaces[0].ID
	return true, nil
}
