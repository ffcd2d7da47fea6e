package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/model"
)

type fakeBrandingRepo struct {
	upserts []model.Branding
}

func (f *fakeBrandingRepo) Upsert(_ context.Context, b model.Branding) error {
	f.upserts = append(f.upserts, b)
	return nil
}

type fakeTaskRepo struct {
	tasks []model.Task
}

func (f *fakeTaskRepo) List(context.Context) ([]model.Task, error) {
	return f.tasks, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, t *model.Task) error {
	f.tasks = append(f.tasks, *t)
	return nil
}

func (f *fakeTaskRepo) Update(context.Context, string, map[string]any) (*model.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Delete(context.Context, string) error {
	return nil
}

// CreateFollowUpOnce mirrors the SQL repository's conditional insert against
// the open-follow-up unique index.
func (f *fakeTaskRepo) CreateFollowUpOnce(_ context.Context, t *model.Task) (bool, error) {
	for i := range f.tasks {
		existing := f.tasks[i]
		if existing.ThreadID != nil && t.ThreadID != nil &&
			*existing.ThreadID == *t.ThreadID && existing.Name == t.Name && !existing.Completed {
			return false, nil
		}
	}
	f.tasks = append(f.tasks, *t)
	return true, nil
}

func saveBranding(t *testing.T, tool Tool, threadID, args string) Result {
	t.Helper()
	out, err := tool.Handler(context.Background(), json.RawMessage(args), Invocation{ThreadID: threadID})
	require.NoError(t, err)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestSaveBrandingDataComplete(t *testing.T) {
	brandingRepo := &fakeBrandingRepo{}
	taskRepo := &fakeTaskRepo{}
	tool := NewSaveBrandingData(zap.NewNop(), brandingRepo, taskRepo)

	res := saveBranding(t, tool, "thread_1", `{"logoLink":"https://cdn.example.com/logo.svg","primaryBrandColor":"#336699"}`)

	assert.True(t, res.Success)
	assert.Equal(t, "Okay, I have saved that branding information.", res.Message)

	require.Len(t, brandingRepo.upserts, 1)
	assert.Equal(t, "thread_1", brandingRepo.upserts[0].ThreadID)
	assert.Equal(t, "#336699", brandingRepo.upserts[0].PrimaryBrandColor)
	assert.Empty(t, taskRepo.tasks)
}

func TestSaveBrandingDataMissingLogoCreatesFollowUp(t *testing.T) {
	brandingRepo := &fakeBrandingRepo{}
	taskRepo := &fakeTaskRepo{}
	tool := NewSaveBrandingData(zap.NewNop(), brandingRepo, taskRepo)

	res := saveBranding(t, tool, "thread_1", `{"primaryBrandColor":"#336699"}`)

	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "Note: the logo link is still missing.")

	require.Len(t, taskRepo.tasks, 1)
	task := taskRepo.tasks[0]
	assert.Equal(t, "Collect logo file link from customer", task.Name)
	assert.Equal(t, []string{followUpTag}, []string(task.Tags))
	require.NotNil(t, task.ThreadID)
	assert.Equal(t, "thread_1", *task.ThreadID)
}

func TestSaveBrandingDataMissingBothFields(t *testing.T) {
	brandingRepo := &fakeBrandingRepo{}
	taskRepo := &fakeTaskRepo{}
	tool := NewSaveBrandingData(zap.NewNop(), brandingRepo, taskRepo)

	res := saveBranding(t, tool, "thread_1", `{}`)

	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "the logo link is still missing and the primary brand color is still missing")
	assert.Len(t, taskRepo.tasks, 2)
}

func TestSaveBrandingDataDoesNotDuplicateFollowUps(t *testing.T) {
	brandingRepo := &fakeBrandingRepo{}
	taskRepo := &fakeTaskRepo{}
	tool := NewSaveBrandingData(zap.NewNop(), brandingRepo, taskRepo)

	saveBranding(t, tool, "thread_1", `{"primaryBrandColor":"#336699"}`)
	saveBranding(t, tool, "thread_1", `{"primaryBrandColor":"#336699"}`)

	assert.Len(t, taskRepo.tasks, 1)

	// a different conversation still gets its own follow-up
	saveBranding(t, tool, "thread_2", `{"primaryBrandColor":"#445566"}`)
	assert.Len(t, taskRepo.tasks, 2)
}
