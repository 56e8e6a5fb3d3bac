package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewAccountDAO,
	NewStatusDAO,
	NewStatusStatDAO,
	NewFavouriteDAO,
	NewNotificationDAO,
)
