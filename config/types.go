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

package config

type FyptrackConfig struct {
	DB       DBConfig       `yaml:"mysql"`
	Redis    RedisConfig    `yaml:"redis"`
	Deadline DeadlineConfig `yaml:"deadline"`
}

type DBConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type DeadlineConfig struct {
	// MinGapDays 相邻截止日期的最小间隔天数
	MinGapDays int `yaml:"minGapDays"`
}
