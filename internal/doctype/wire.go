// Copyright 2024 edusphere
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package doctype

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository/cache"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/doctype/internal/service"
	"github.com/edusphere/fyptrack/internal/doctype/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, ec ecache.Cache) *Module {
	wire.Build(
		InitTablesOnce,
		cache.NewDocTypeCache,
		repository.NewDocumentTypeRepository,
		service.NewService,
		web.NewAdminHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.DocumentTypeDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewDocumentTypeDAO(db)
}
