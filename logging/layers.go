// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	. "github.com/netapp/xtremio-driver/config"
)

const (
	WorkflowFlagSeparator      = ":"
	workflowCategorySeparator  = "="
	workflowOperationSeparator = ","

	LogLayerSeparator = ","

	LogLayerXtremIOAPI         = LogLayer("xtremio_api")
	LogLayerXtremIOISCSIDriver = LogLayer(XtremIOISCSIStorageDriverName)
	LogLayerXtremIOFCDriver    = LogLayer(XtremIOFCStorageDriverName)
	LogLayerFakeXMS            = LogLayer("fake_xms")
	LogLayerCLI                = LogLayer("cli")
	LogLayerUtils              = LogLayer("utils")
	LogLayerAll                = LogLayer("all")
	LogLayerNone               = LogLayer("none")

	CategoryDriver   = WorkflowCategory("driver")
	CategoryVolume   = WorkflowCategory("volume")
	CategorySnapshot = WorkflowCategory("snapshot")
	CategoryGroup    = WorkflowCategory("group")
	CategoryMapping  = WorkflowCategory("mapping")
	CategoryNone     = WorkflowCategory("none")

	OpInit      = WorkflowOperation("init")
	OpGetStats  = WorkflowOperation("get_stats")
	OpCreate    = WorkflowOperation("create")
	OpUpdate    = WorkflowOperation("update")
	OpDelete    = WorkflowOperation("delete")
	OpResize    = WorkflowOperation("resize")
	OpClone     = WorkflowOperation("clone")
	OpCloneFrom = WorkflowOperation("clone_from")
	OpImport    = WorkflowOperation("import")
	OpUnmanage  = WorkflowOperation("unmanage")
	OpPublish   = WorkflowOperation("publish")
	OpUnpublish = WorkflowOperation("unpublish")
	OpTraceAPI  = WorkflowOperation("trace_api")
	OpNone      = WorkflowOperation("none")
)

var (
	WorkflowDriverInit     = Workflow{CategoryDriver, OpInit}
	WorkflowDriverGetStats = Workflow{CategoryDriver, OpGetStats}
	WorkflowDriverTraceAPI = Workflow{CategoryDriver, OpTraceAPI}

	WorkflowVolumeCreate   = Workflow{CategoryVolume, OpCreate}
	WorkflowVolumeDelete   = Workflow{CategoryVolume, OpDelete}
	WorkflowVolumeResize   = Workflow{CategoryVolume, OpResize}
	WorkflowVolumeClone    = Workflow{CategoryVolume, OpClone}
	WorkflowVolumeImport   = Workflow{CategoryVolume, OpImport}
	WorkflowVolumeUnmanage = Workflow{CategoryVolume, OpUnmanage}

	WorkflowSnapshotCreate    = Workflow{CategorySnapshot, OpCreate}
	WorkflowSnapshotDelete    = Workflow{CategorySnapshot, OpDelete}
	WorkflowSnapshotCloneFrom = Workflow{CategorySnapshot, OpCloneFrom}

	WorkflowGroupCreate    = Workflow{CategoryGroup, OpCreate}
	WorkflowGroupUpdate    = Workflow{CategoryGroup, OpUpdate}
	WorkflowGroupDelete    = Workflow{CategoryGroup, OpDelete}
	WorkflowGroupCloneFrom = Workflow{CategoryGroup, OpCloneFrom}

	WorkflowMappingPublish   = Workflow{CategoryMapping, OpPublish}
	WorkflowMappingUnpublish = Workflow{CategoryMapping, OpUnpublish}

	WorkflowNone = Workflow{CategoryNone, OpNone}
)

var Layers = []LogLayer{
	LogLayerXtremIOAPI,
	LogLayerXtremIOISCSIDriver,
	LogLayerXtremIOFCDriver,
	LogLayerFakeXMS,
	LogLayerCLI,
	LogLayerUtils,
	LogLayerAll,
}
