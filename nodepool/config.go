// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package nodepool

import (
	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/conf"
	"github.com/NVIDIA/orderedtree/logger"
)

func makePoolFromConfMap[T any](confMap conf.ConfMap, section string) (pool *Pool[T], err error) {
	if _, ok := confMap[section]; !ok {
		err = blunder.NewError(blunder.NotFoundError, "nodepool: [%v] missing", section)
		return
	}

	maxNodes := DefaultMaxNodes
	if _, ok := confMap[section]["MaxNodes"]; ok {
		maxNodes, err = confMap.FetchOptionValueUint64(section, "MaxNodes")
		if nil != err {
			err = blunder.AddError(err, blunder.InvalidArgError)
			return
		}
	}

	freeListLimit := DefaultFreeListLimit
	if _, ok := confMap[section]["FreeListLimit"]; ok {
		freeListLimit, err = confMap.FetchOptionValueUint64(section, "FreeListLimit")
		if nil != err {
			err = blunder.AddError(err, blunder.InvalidArgError)
			return
		}
	}

	if (0 != maxNodes) && (freeListLimit > maxNodes) {
		freeListLimit = maxNodes
	}

	logger.Infof("[%v] MaxNodes: %v FreeListLimit: %v", section, maxNodes, freeListLimit)

	pool = makePool[T](maxNodes, freeListLimit)

	err = nil
	return
}
