package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

func newTestWorksheet() *Worksheet {
	return NewWorksheet("trechos",
		[]string{"trecho_id", "conteudo"},
		[]string{"1", "um"},
		[]string{"2", "dois"},
		[]string{"3"},
	)
}

func TestWorksheet_ReadAll(t *testing.T) {
	ws := newTestWorksheet()

	table, err := ws.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"trecho_id", "conteudo"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "um", table.Rows[0]["conteudo"])

	_, ok := table.Rows[2]["conteudo"]
	assert.False(t, ok, "short rows leave cells absent")
}

func TestWorksheet_ReadAll_ReturnsCopy(t *testing.T) {
	ws := newTestWorksheet()
	table, err := ws.ReadAll(context.Background())
	require.NoError(t, err)

	table.Rows[0]["conteudo"] = "changed"
	assert.Equal(t, "um", ws.Cell(2, 2))
}

func TestWorksheet_UpdateCell(t *testing.T) {
	ws := newTestWorksheet()
	ctx := context.Background()

	require.NoError(t, ws.UpdateCell(ctx, 3, 2, "DOIS"))
	assert.Equal(t, "DOIS", ws.Cell(3, 2))

	require.NoError(t, ws.UpdateCell(ctx, 4, 2, "tres"), "short row grows")
	assert.Equal(t, "tres", ws.Cell(4, 2))

	err := ws.UpdateCell(ctx, 0, 1, "x")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWorksheet_DeleteRow_ShiftsRows(t *testing.T) {
	ws := newTestWorksheet()

	require.NoError(t, ws.DeleteRow(context.Background(), 2))
	assert.Equal(t, 2, ws.RowCount())
	assert.Equal(t, "2", ws.Cell(2, 1))
	assert.Equal(t, "3", ws.Cell(3, 1))

	err := ws.DeleteRow(context.Background(), 10)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWorksheet_AppendRow(t *testing.T) {
	ws := newTestWorksheet()

	require.NoError(t, ws.AppendRow(context.Background(), []string{"4", "quatro"}))
	assert.Equal(t, 4, ws.RowCount())
	assert.Equal(t, "quatro", ws.Cell(5, 2))
}

func TestWorksheet_Disabled(t *testing.T) {
	ws := NewDisabledWorksheet("trechos")
	ctx := context.Background()

	assert.False(t, ws.Enabled())
	assert.Equal(t, "trechos", ws.Name())

	_, err := ws.ReadAll(ctx)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.True(t, errors.Is(ws.UpdateCell(ctx, 2, 1, "x"), domain.ErrStoreUnavailable))
	assert.True(t, errors.Is(ws.DeleteRow(ctx, 2), domain.ErrStoreUnavailable))
	assert.True(t, errors.Is(ws.AppendRow(ctx, nil), domain.ErrStoreUnavailable))
}

func TestWorksheet_FailOn(t *testing.T) {
	ws := newTestWorksheet()
	ctx := context.Background()
	boom := errors.New("boom")

	ws.FailOn(OpUpdateCell, 1, boom)
	require.NoError(t, ws.UpdateCell(ctx, 2, 2, "a"))
	assert.ErrorIs(t, ws.UpdateCell(ctx, 2, 2, "b"), boom)
	assert.Equal(t, "a", ws.Cell(2, 2), "failed update must not write")
	assert.Equal(t, 2, ws.Calls(OpUpdateCell))

	ws.ClearFailures()
	require.NoError(t, ws.UpdateCell(ctx, 2, 2, "c"))
}

func TestWorksheet_OnUpdate(t *testing.T) {
	ws := newTestWorksheet()
	var seen []string
	ws.OnUpdate(func(_, _ int, value string) {
		seen = append(seen, value)
	})

	require.NoError(t, ws.UpdateCell(context.Background(), 2, 2, "x"))
	assert.Equal(t, []string{"x"}, seen)
}
