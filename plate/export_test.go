package plate

// PaintGrid exposes paintGrid to plate_test.
var PaintGrid = paintGrid
