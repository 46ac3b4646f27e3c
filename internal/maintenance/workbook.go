package maintenance

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

const workbookInfoSheet = "snapshot"

// WriteWorkbook snapshot'ı her koleksiyon için ayrı sayfada olacak şekilde xlsx olarak yazar.
// Sadece okuma amaçlıdır, geri yükleme JSON dosyasıyla yapılır.
func WriteWorkbook(snapshot *SystemSnapshot, w io.Writer) error {
	if snapshot == nil {
		return ErrInvalidSnapshot
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workbookInfoSheet); err != nil {
		return err
	}
	info := [][]any{
		{"version", snapshot.Version},
		{"exportedAt", snapshot.ExportedAt},
	}
	for i, row := range info {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(workbookInfoSheet, cell, &row); err != nil {
			return err
		}
	}

	data := reflect.ValueOf(snapshot.Data)
	for i := 0; i < data.NumField(); i++ {
		field := data.Type().Field(i)
		if err := writeSheet(f, jsonName(field), data.Field(i)); err != nil {
			return fmt.Errorf("%s sayfası yazılamadı: %w", jsonName(field), err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, name string, rows reflect.Value) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	elem := rows.Type().Elem()
	header := make([]any, elem.NumField())
	for i := range header {
		header[i] = jsonName(elem.Field(i))
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for r := 0; r < rows.Len(); r++ {
		record := rows.Index(r)
		cells := make([]any, record.NumField())
		for i := range cells {
			cells[i] = cellValue(record.Field(i))
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(v reflect.Value) any {
	if raw, ok := v.Interface().(datatypes.JSON); ok {
		if len(raw) == 0 {
			return ""
		}
		return string(raw)
	}
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return ""
		}
		return cellValue(v.Elem())
	case reflect.String:
		return v.String()
	case reflect.Slice, reflect.Map, reflect.Struct:
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return v.Interface()
	}
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		return field.Name
	}
	return name
}
