package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Forecast errors
	ForecastParamsError

	// Fertility data errors
	FertilityFileError
	FertilityHeaderError

	// Housing data errors
	HousingFileError
	HousingColumnError

	// Residents data errors
	ResidentsFileError
	ResidentsSheetError
	ResidentsColumnError

	// Preschool data errors
	SubzonesFileError
	SubzonesGeoJSONError
	CentresFileError
	CentresColumnError
	GeocodeTokenError
	GeocodeRequestError
	GeocodeResponseError

	// Report errors
	ReportWriteError

	// Store errors
	StoreOpenError
	StoreSchemaError
	StoreSaveError
	StoreQueryError
	StoreNotFoundError

	// Server errors
	ServerStartError
)
