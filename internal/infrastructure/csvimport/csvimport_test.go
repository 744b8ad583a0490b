package csvimport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/csvimport"
	"github.com/Mamba1099/milk-farm-sub002/internal/testutil"
)

func TestRead_CabeceraComaDecimalYSesionVacia(t *testing.T) {
	in := "tag,date,am,pm\n" +
		"c-1,2024-03-01,10.5,\"12,25\"\n" +
		"\n" +
		"C-2,01/03/2024,,8\n"
	rows, err := csvimport.Read(strings.NewReader(in), csvimport.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "C-1", rows[0].Tag)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "2024-03-01", rows[0].Date.Format("2006-01-02"))
	require.NotNil(t, rows[0].AM)
	assert.True(t, decimal.RequireFromString("10.5").Equal(*rows[0].AM))
	require.NotNil(t, rows[0].PM)
	assert.True(t, decimal.RequireFromString("12.25").Equal(*rows[0].PM))

	assert.Nil(t, rows[1].AM)
	assert.Equal(t, "2024-03-01", rows[1].Date.Format("2006-01-02"))
}

func TestRead_Latin1(t *testing.T) {
	utf8 := "tag;date;am;pm\nÑANDÚ;2024-03-01;4;5\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	rows, err := csvimport.Read(bytes.NewBufferString(latin1), csvimport.Options{Latin1: true, Comma: ';'})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ÑANDÚ", rows[0].Tag)
}

func TestRead_ErroresConLinea(t *testing.T) {
	cases := map[string]string{
		"fecha":     "C-1,2024-13-01,1,1\n",
		"negativo":  "C-1,2024-03-01,-1,1\n",
		"columnas":  "C-1,2024-03-01\n",
		"sin litro": "C-1,2024-03-01,,\n",
		"numero":    "C-1,2024-03-01,abc,1\n",
	}
	for name, in := range cases {
		_, err := csvimport.Read(strings.NewReader("tag,date,am,pm\n"+in), csvimport.Options{})
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "línea 2", name)
	}
}

func TestImport_CargaOmiteDuplicadosYReportaErrores(t *testing.T) {
	ctx := context.Background()
	animals := testutil.NewAnimalRepo()
	require.NoError(t, animals.Create(ctx, &entity.Animal{
		ID: "cow-1", TagNumber: "C-1", Type: entity.AnimalTypeCow, Gender: entity.GenderFemale,
	}))
	require.NoError(t, animals.Create(ctx, &entity.Animal{
		ID: "bull-1", TagNumber: "B-1", Type: entity.AnimalTypeBull, Gender: entity.GenderMale,
	}))
	prod := testutil.NewProductionRepo()
	im := csvimport.NewImporter(animals, production.NewRecordUseCase(&testutil.LedgerTx{Production: prod, Summaries: testutil.NewSummaryRepo()}, prod, animals))

	in := "tag,date,am,pm\n" +
		"C-1,2024-03-01,10,12\n" +
		"C-1,2024-03-02,9,\n" +
		"C-1,2024-03-01,1,1\n" +
		"X-9,2024-03-01,1,1\n" +
		"B-1,2024-03-01,1,1\n"
	rows, err := csvimport.Read(strings.NewReader(in), csvimport.Options{})
	require.NoError(t, err)

	res, err := im.Import(ctx, "user-1", rows)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 5, res.Errors[0].Line)
	assert.ErrorIs(t, res.Errors[0].Err, domain.ErrNotFound)
	assert.Equal(t, "B-1", res.Errors[1].Tag)
	assert.ErrorIs(t, res.Errors[1].Err, domain.ErrInvalidInput)

	recs, err := prod.ListBetween(ctx, rows[0].Date, rows[1].Date)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
