package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(FavouriteService), "*"),
	wire.Bind(new(IFavouriteService), new(*FavouriteService)),

	wire.Struct(new(StatusService), "*"),
	wire.Bind(new(IStatusService), new(*StatusService)),

	NewStatusIndexer,
)
