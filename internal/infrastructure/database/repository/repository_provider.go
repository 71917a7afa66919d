package repository

import (
	"github.com/google/wire"

	"apkraft/internal/domain/app"
	"apkraft/internal/domain/file"
	"apkraft/internal/domain/platform"
	"apkraft/internal/infrastructure/database/repository/apprepo"
	"apkraft/internal/infrastructure/database/repository/filerepo"
	"apkraft/internal/infrastructure/database/repository/platformrepo"
)

var RepositoryProvider = wire.NewSet(
	platformrepo.NewPlatformGormRepository,
	wire.Bind(new(platform.Repository), new(*platformrepo.PlatformGormRepository)),
	filerepo.NewFileGormRepository,
	wire.Bind(new(file.Repository), new(*filerepo.FileGormRepository)),
	apprepo.NewAppGormRepository,
	wire.Bind(new(app.Repository), new(*apprepo.AppGormRepository)),
	apprepo.NewAppVersionGormRepository,
	wire.Bind(new(app.VersionRepository), new(*apprepo.AppVersionGormRepository)),
)
