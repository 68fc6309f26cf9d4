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

package evaluation

import (
	"sync"

	"github.com/edusphere/fyptrack/internal/evaluation/internal/repository"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/service"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/web"
	"github.com/edusphere/fyptrack/internal/submission"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, submissionModule *submission.Module) *Module {
	wire.Build(
		InitTablesOnce,
		repository.NewEvaluationRepository,
		service.NewService,
		web.NewHandler,
		web.NewAdminHandler,
		wire.FieldsOf(new(*submission.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.EvaluationDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewEvaluationDAO(db)
}
