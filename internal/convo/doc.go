// Copyright 2025 The ghconvo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package convo holds the conversation domain model and the assembler that
// builds it: a ResourceRef parsed from an input URL, the lenient normalizer
// mapping raw API records to Comments, and the Assembler that merges the
// description, issue comments, review comments, and diff of a resource into
// one chronologically ordered Conversation with accumulated Warnings.
package convo
