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

package submission

import (
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/submission/internal/event"
	"github.com/edusphere/fyptrack/internal/submission/internal/job"
	"github.com/edusphere/fyptrack/internal/submission/internal/repository"
	"github.com/edusphere/fyptrack/internal/submission/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/submission/internal/service"
	"github.com/edusphere/fyptrack/internal/submission/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/jonboulle/clockwork"
)

func InitModule(db *egorm.Component, q mq.MQ,
	docTypeModule *doctype.Module,
	deadlineModule *deadline.Module,
	clock clockwork.Clock) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		event.NewSubmissionEventProducer,
		repository.NewSubmissionRepository,
		service.NewService,
		web.NewHandler,
		web.NewAdminHandler,
		job.NewLockOverdueSubmissionsJob,
		wire.FieldsOf(new(*doctype.Module), "Svc"),
		wire.FieldsOf(new(*deadline.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.SubmissionDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewSubmissionDAO(db)
}
