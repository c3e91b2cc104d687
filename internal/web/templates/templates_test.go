package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/orderdesk/internal/core"
)

func TestSummaryPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SummaryPage(SummaryParams{Stats: core.Stats{Users: 12}}).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>Сводка заказов</title>")
	assert.Contains(t, out, "Заказов пока нет")
	assert.NotContains(t, out, "<table>")
}

func TestSummaryPage_RowsAreEscaped(t *testing.T) {
	rows := []core.SummaryRow{{
		Product:       core.Product{Name: "<b>Соль</b>", Code: "S-1", Unit: "кг"},
		TotalQuantity: 7,
		Orderers:      []string{"Анна", "Борис"},
	}}

	var buf bytes.Buffer
	require.NoError(t, SummaryPage(SummaryParams{Rows: rows}).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "&lt;b&gt;Соль&lt;/b&gt;")
	assert.NotContains(t, out, "<b>Соль</b>")
	assert.Contains(t, out, `<td class="num">7</td>`)
	assert.Contains(t, out, "Анна, Борис")
	assert.Contains(t, out, `href="/api/export"`)
}

func TestErrorAlert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorAlert("Файл пуст", "", "FILE005").Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Файл пуст")
	assert.Contains(t, out, "FILE005")
	assert.NotContains(t, out, "<p></p>")
}

func TestErrorPage_WrapsAlertInLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage("Товар не найден", "Обновите список", "CAT002").Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<title>Ошибка</title>")
	assert.Contains(t, out, "<p>Обновите список</p>")
	assert.Contains(t, out, "Код: CAT002")
	assert.True(t, strings.HasSuffix(out, "</body></html>"))
}

func TestSummaryPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := SummaryPage(SummaryParams{}).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
