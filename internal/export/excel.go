package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// materialItem is one inventory line: counts come out of the gpsDetails and
// poleDetails payloads under the same key.
type materialItem struct {
	name string
	key  string
	unit string
}

var materialItems = []materialItem{
	{"3 Phase L.T. Distribution box", "ltDistributionBox3Phase", "Nos."},
	{"AB Switch", "abSwitch", "Set"},
	{"Anchor Rod", "anchorRod", "Nos."},
	{"Anchoring Assembly", "anchoringAssembly", "Set"},
	{"Angle 4 Feet", "angle4Feet", "Nos."},
	{"Angle 9 Feet", "angle9Feet", "Nos."},
	{"Base Plate", "basePlat", "Nos."},
	{"Channel 4 Feet", "channel4Feet", "Nos."},
	{"Channel 9 Feet", "channel9Feet", "Nos."},
	{"D.O. Channel", "doChannel", "Nos."},
	{"D.O. Channel Back Clamp", "doChannelBackClamp", "Nos."},
	{"D.O. Fuse", "doFuse", "Nos."},
	{"Disc Hardware", "discHardware", "Nos."},
	{"Disc Insulator (Polymeric)", "discInsulatorPolymeric", "Nos."},
	{"Disc Insulator (Porcelain)", "discInsulatorPorcelain", "Nos."},
	{"DTR Base Channel", "dtrBaseChannel", "Nos."},
	{"DTR Spotting Angle", "dtrSpottingAngle", "Nos."},
	{"DVC Conductor", "dvcConductor", "Kg."},
	{"Earthing Conductor", "earthingConductor", "Kg."},
	{"Elbow", "elbow", "Nos."},
	{"Eye-Bolt", "eyeBolt", "Nos."},
	{"GI Pin", "giPin", "Nos."},
	{"GI Pipe", "giPipe", "Nos."},
	{"Greeper", "greeper", "Nos."},
	{"Guy Insulator", "guyInsulator", "Nos."},
	{"I Huck Clamp", "iHuckClamp", "Nos."},
	{"Lighting Arrestor", "lightingArrestor", "Nos."},
	{"Pin Insulator Polymeric", "pinInsulatorPolymeric", "Set"},
	{"Pin Insulator Porcelain", "pinInsulatorPorcelain", "Nos."},
	{"Pole Earthing", "poleEarthing", "Nos."},
	{"Side Clamp", "sideClamp", "Nos."},
	{"Spotting Angle", "spottingAngle", "Nos."},
	{"Spotting Channel", "spottingChannel", "Nos."},
	{"Stay Clamp", "stayClamp", "Nos."},
	{"Stay Insulator", "stayInsulator", "Nos."},
	{"Stay Rod", "stayRoad", "Nos."},
	{"Stay Wire 7/12", "stayWire712", "Kg."},
	{"Suspension Assembly Clamp", "suspensionAssemblyClamp", "Nos."},
	{"Top Channel", "topChannel", "Nos."},
	{"Top Clamp", "topClamp", "Nos."},
	{"Turn Buckle", "turnBuckle", "Nos."},
	{"V Cross Arm", "vCrossArm", "Nos."},
	{"V Cross Arm Clamp", "vCrossArmClamp", "Nos."},
	{"X Bressing", "xBressing", "Nos."},
	{"Earthing Coil", "earthingCoil", "Nos."},
}

// poleTypeRows maps the inventory label to the poleType value recorded in
// poleDetails.
var poleTypeRows = []struct{ label, poleType string }{
	{"Line Pole", "PCC Pole/ PSC Pole"},
	{"Angle Pole /Shackle Pole", "RSJ Pole"},
	{"Tapping Pole", "Rail Pole"},
	{"Double Pole Structure", "H-Beam Pole"},
}

var transformerKVs = []string{
	"5KV", "10KV", "25KV", "100KV", "200KV", "250KV", "315KV", "400KV", "500KV",
}

const (
	inventorySheet = "Inventory"
	materialSheet  = "Details of Material"
)

// Excel builds the two-sheet survey workbook: an Inventory summary (pole
// type counts, transformer KV counts, material totals) and a Details of
// Material sheet with one row per waypoint.
func Excel(waypoints []models.Waypoint) ([]byte, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("no waypoints provided")
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", inventorySheet)
	if _, err := f.NewSheet(materialSheet); err != nil {
		return nil, fmt.Errorf("create material sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: "Arial", Size: 10, Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := writeInventorySheet(f, waypoints, boldStyle); err != nil {
		return nil, err
	}
	if err := writeMaterialSheet(f, waypoints, boldStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInventorySheet(f *excelize.File, waypoints []models.Waypoint, boldStyle int) error {
	f.SetColWidth(inventorySheet, "B", "B", 30)
	f.SetColWidth(inventorySheet, "C", "J", 18)

	row := 1
	f.SetCellValue(inventorySheet, cell("B", row), "Total Route Length")
	f.SetCellValue(inventorySheet, cell("E", row), totalRouteKm(waypoints))
	f.SetCellValue(inventorySheet, cell("J", row), "KM.")
	f.SetCellStyle(inventorySheet, cell("B", row), cell("J", row), boldStyle)
	row += 2

	f.SetCellValue(inventorySheet, cell("B", row), "Type Of Pole")
	f.SetCellValue(inventorySheet, cell("C", row), "Count")
	f.SetCellStyle(inventorySheet, cell("B", row), cell("C", row), boldStyle)
	row++
	for _, pt := range poleTypeRows {
		count := 0
		for _, wp := range waypoints {
			if detailString(firstDetail(wp.PoleDetails), "poleType") == pt.poleType {
				count++
			}
		}
		f.SetCellValue(inventorySheet, cell("B", row), pt.label)
		f.SetCellValue(inventorySheet, cell("C", row), count)
		row++
	}
	row++

	f.SetCellValue(inventorySheet, cell("B", row), "Transformer KV")
	f.SetCellStyle(inventorySheet, cell("B", row), cell("B", row), boldStyle)
	row++
	for _, kv := range transformerKVs {
		count := 0
		for _, wp := range waypoints {
			if detailString(firstDetail(wp.GpsDetails), "transformerKV") == kv {
				count++
			}
		}
		f.SetCellValue(inventorySheet, cell("B", row), kv)
		f.SetCellValue(inventorySheet, cell("J", row), count)
		row++
	}
	row++

	f.SetCellValue(inventorySheet, cell("B", row), "Description")
	f.SetCellValue(inventorySheet, cell("I", row), "Unit")
	f.SetCellValue(inventorySheet, cell("J", row), "Total Qty.")
	f.SetCellStyle(inventorySheet, cell("B", row), cell("J", row), boldStyle)
	row++
	for _, item := range materialItems {
		total := 0.0
		for _, wp := range waypoints {
			total += detailNumber(firstDetail(wp.GpsDetails), item.key)
			total += detailNumber(firstDetail(wp.PoleDetails), item.key)
		}
		f.SetCellValue(inventorySheet, cell("B", row), item.name)
		f.SetCellValue(inventorySheet, cell("I", row), item.unit)
		f.SetCellValue(inventorySheet, cell("J", row), total)
		row++
	}
	return nil
}

var materialHeaders = []string{
	"Sr No.", "Time & Date", "Waypoint", "District", "Route Start Point",
	"Route End Point", "Length / Km.", "GPS Coordinates", "Substation Name",
	"Feeder Name", "Conductor", "Cable", "Transformer Location",
	"Transformer KV", "Pole No.", "Proposal Type", "Pole Type",
	"Pole Size (m)", "Route Type",
}

func writeMaterialSheet(f *excelize.File, waypoints []models.Waypoint, boldStyle int) error {
	for i, h := range materialHeaders {
		name, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(materialSheet, name, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(materialHeaders), 1)
	f.SetCellStyle(materialSheet, "A1", last, boldStyle)

	for i, wp := range waypoints {
		gps := firstDetail(wp.GpsDetails)
		pole := firstDetail(wp.PoleDetails)

		lengthKm := 0.0
		if i+1 < len(waypoints) {
			next := waypoints[i+1]
			lengthKm = HaversineMeters(wp.Latitude, wp.Longitude, next.Latitude, next.Longitude) / 1000
		}

		values := []interface{}{
			i + 1,
			wp.Timestamp.Format("02-01-2006 03.04pm"),
			wp.Name,
			detailString(gps, "district"),
			wp.RouteStartPoint,
			wp.RouteEndPoint,
			lengthKm,
			fmt.Sprintf("%v, %v", wp.Latitude, wp.Longitude),
			detailString(gps, "substationName"),
			detailString(gps, "feederName"),
			detailString(gps, "conductor"),
			detailString(gps, "cable"),
			detailString(gps, "transformerLocation"),
			detailString(gps, "transformerKV"),
			detailString(pole, "poleNo"),
			detailString(pole, "existingOrNewProposed"),
			detailString(pole, "poleType"),
			detailString(pole, "poleSizeInMeter"),
			wp.RouteType,
		}
		for col, v := range values {
			name, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			f.SetCellValue(materialSheet, name, v)
		}
	}

	totalRow := len(waypoints) + 2
	f.SetCellValue(materialSheet, cell("A", totalRow), "Total Length:")
	f.SetCellValue(materialSheet, cell("G", totalRow), totalRouteKm(waypoints))
	f.SetCellStyle(materialSheet, cell("A", totalRow), cell("G", totalRow), boldStyle)
	return nil
}

func totalRouteKm(waypoints []models.Waypoint) float64 {
	total := 0.0
	for i := 0; i+1 < len(waypoints); i++ {
		total += HaversineMeters(
			waypoints[i].Latitude, waypoints[i].Longitude,
			waypoints[i+1].Latitude, waypoints[i+1].Longitude,
		)
	}
	return total / 1000
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
