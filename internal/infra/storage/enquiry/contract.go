package enquiry

import "github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
