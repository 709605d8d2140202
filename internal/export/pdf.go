package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// routeColor maps a waypoint's route type to its map color. Existing route
// sections draw black, newly proposed ones orange.
func routeColor(routeType string) (r, g, b int) {
	if strings.Contains(strings.ToLower(routeType), "new") {
		return 0xFB, 0x85, 0x00
	}
	return 0, 0, 0
}

// PDF draws the waypoint map onto an A4 page: scaled points connected in
// submission order, colored per route type, with a legend table. Point and
// label sizes shrink as the waypoint count grows so dense surveys stay
// readable.
func PDF(waypoints []models.Waypoint) ([]byte, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("no waypoints provided")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Waypoint Map", "", 1, "C", false, 0, "")

	// Element scale: full size up to 50 waypoints, then a linear shrink
	// down to 20% at 1000.
	scale := 1.0
	if n := len(waypoints); n > 50 {
		scale = 1.0 - float64(n-50)/950*0.8
		if scale < 0.2 {
			scale = 0.2
		}
	}

	minLat, maxLat := waypoints[0].Latitude, waypoints[0].Latitude
	minLon, maxLon := waypoints[0].Longitude, waypoints[0].Longitude
	for _, wp := range waypoints {
		if wp.Latitude < minLat {
			minLat = wp.Latitude
		}
		if wp.Latitude > maxLat {
			maxLat = wp.Latitude
		}
		if wp.Longitude < minLon {
			minLon = wp.Longitude
		}
		if wp.Longitude > maxLon {
			maxLon = wp.Longitude
		}
	}
	latRange := maxLat - minLat
	if latRange == 0 {
		latRange = 0.0001
	}
	lonRange := maxLon - minLon
	if lonRange == 0 {
		lonRange = 0.0001
	}

	const (
		mapX      = 30.0
		mapY      = 30.0
		mapWidth  = 150.0
		mapHeight = 140.0
	)
	scaleX := func(lon float64) float64 { return mapX + (lon-minLon)/lonRange*mapWidth }
	scaleY := func(lat float64) float64 { return mapY + (maxLat-lat)/latRange*mapHeight }

	type point struct {
		x, y    float64
		r, g, b int
	}
	points := make([]point, len(waypoints))
	for i, wp := range waypoints {
		r, g, b := routeColor(wp.RouteType)
		points[i] = point{x: scaleX(wp.Longitude), y: scaleY(wp.Latitude), r: r, g: g, b: b}
	}

	// Connections first so the markers draw on top of them.
	pdf.SetLineWidth(0.4 * scale)
	for i := 0; i+1 < len(points); i++ {
		pdf.SetDrawColor(points[i].r, points[i].g, points[i].b)
		pdf.Line(points[i].x, points[i].y, points[i+1].x, points[i+1].y)
	}

	pdf.SetFont("Arial", "", 6*scale+2)
	for i, wp := range waypoints {
		p := points[i]
		pdf.SetFillColor(p.r, p.g, p.b)
		pdf.Circle(p.x, p.y, 1.2*scale, "F")
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(p.x+2*scale, p.y-1*scale, wp.Name)
	}

	drawLegend(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLegend(pdf *fpdf.Fpdf) {
	rows := []struct {
		label   string
		r, g, b int
	}{
		{"Existing Route", 0, 0, 0},
		{"New Route", 0xFB, 0x85, 0x00},
		{"Existing Transformer", 0, 0, 0},
		{"New Transformer", 0xFB, 0x85, 0x00},
		{"Existing Pole", 0, 0, 0},
		{"New Pole", 0xFB, 0x85, 0x00},
	}

	const (
		rowHeight = 6.0
		colSymbol = 10.0
		colLabel  = 45.0
	)
	tableW := colSymbol + colLabel
	tableH := rowHeight * float64(len(rows)+1)
	x := 210 - 15 - tableW // right margin
	y := 297 - 15 - tableH // bottom margin

	pdf.SetFont("Arial", "B", 9)
	pdf.Text(x, y-2, "LEGEND")

	pdf.SetDrawColor(0xCC, 0xCC, 0xCC)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, tableW, tableH, "D")
	pdf.Line(x+colSymbol, y, x+colSymbol, y+tableH)

	pdf.SetFont("Arial", "B", 7)
	pdf.Text(x+1, y+rowHeight-2, "Sym")
	pdf.Text(x+colSymbol+2, y+rowHeight-2, "Description")
	pdf.Line(x, y+rowHeight, x+tableW, y+rowHeight)

	pdf.SetFont("Arial", "", 7)
	for i, row := range rows {
		rowY := y + rowHeight*float64(i+1)
		pdf.SetFillColor(row.r, row.g, row.b)
		pdf.Circle(x+colSymbol/2, rowY+rowHeight/2, 1.2, "F")
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(x+colSymbol+2, rowY+rowHeight-2, row.label)
		pdf.Line(x, rowY+rowHeight, x+tableW, rowY+rowHeight)
	}
}
