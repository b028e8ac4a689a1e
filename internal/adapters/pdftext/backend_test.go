package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
)

type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }
func (failingBackend) Extract([]byte) (string, error) {
	return "", apperrors.New(apperrors.ErrCodeExtractionDegraded, "boom")
}

func TestNaiveBackend_ExtractsStringLiterals(t *testing.T) {
	t.Parallel()

	data := []byte("1 0 obj\nBT (Hello) Tj (world from) Tj (a content stream) Tj ET")
	out, err := naiveBackend{}.Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "Hello world from a content stream", out)
}

func TestNaiveBackend_SkipsBinaryLiterals(t *testing.T) {
	t.Parallel()

	data := []byte("(\x01\x02\x03) (ok text)")
	out, err := naiveBackend{}.Extract(data)
	require.NoError(t, err)
	assert.Equal(t, "ok text", out)
}

func TestNaiveBackend_NoLiterals(t *testing.T) {
	t.Parallel()

	_, err := naiveBackend{}.Extract([]byte("nothing here"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeExtractionDegraded))
}

func TestExtractWith_FallsThroughChain(t *testing.T) {
	t.Parallel()

	backends := []Backend{failingBackend{}, naiveBackend{}}
	text, name, err := ExtractWith(backends, []byte("(recovered text)"))
	require.NoError(t, err)
	assert.Equal(t, "recovered text", text)
	assert.Equal(t, "naive", name)
}

func TestExtractWith_NoBackends(t *testing.T) {
	t.Parallel()

	_, _, err := ExtractWith(nil, []byte("(x)"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNoPDFBackend))
}

func TestExtractWith_AllFail(t *testing.T) {
	t.Parallel()

	_, _, err := ExtractWith([]Backend{failingBackend{}}, []byte("junk"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeExtractionDegraded))
}

func TestAvailable_OrdersReaderFirst(t *testing.T) {
	t.Parallel()

	backends := Available()
	require.Len(t, backends, 2)
	assert.Equal(t, "reader", backends[0].Name())
	assert.Equal(t, "naive", backends[1].Name())
}

func TestSelect(t *testing.T) {
	t.Parallel()

	names := func(backends []Backend) []string {
		out := make([]string, 0, len(backends))
		for _, b := range backends {
			out = append(out, b.Name())
		}
		return out
	}

	assert.Equal(t, []string{"reader", "naive"}, names(Select(nil)))
	assert.Equal(t, []string{"naive"}, names(Select([]string{"naive"})))
	assert.Equal(t, []string{"naive", "reader"}, names(Select([]string{"naive", "reader"})))

	// Unknown names are dropped; a fully-unknown list falls back to the
	// default chain.
	assert.Equal(t, []string{"reader"}, names(Select([]string{"bogus", "reader"})))
	assert.Equal(t, []string{"reader", "naive"}, names(Select([]string{"bogus"})))
}
