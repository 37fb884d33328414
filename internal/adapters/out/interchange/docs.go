// Package interchange reads and writes order files: the JSON array produced
// by the API and a flat spreadsheet with one row per roll.
//
// Readers never build orders themselves. They return order.Draft values so
// that every file goes through the same validation as an API create, and a
// bad record is reported against its position instead of failing the file.
//
// Writers take stored orders and are deterministic: the same orders always
// produce the same JSON bytes, and the same cell values in the workbook.
package interchange
