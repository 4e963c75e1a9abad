package gpu

import (
	"github.com/gekko3d/ambient/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

type pipelines struct {
	module      *wgpu.ShaderModule
	frameLayout *wgpu.BindGroupLayout
	matLayout   *wgpu.BindGroupLayout
	layout      *wgpu.PipelineLayout
	opaque      *wgpu.RenderPipeline
	transparent *wgpu.RenderPipeline
	points      *wgpu.RenderPipeline
}

var vertexLayouts = []wgpu.VertexBufferLayout{
	{
		ArrayStride: vertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
		},
	},
	{
		ArrayStride: instanceStride,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 7},
		},
	},
}

var alphaBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

func newPipelines(device *wgpu.Device, format wgpu.TextureFormat) (pipelines, error) {
	var p pipelines
	var err error
	p.module, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Scene Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.SceneWGSL},
	})
	if err != nil {
		return p, err
	}

	// Both groups are shared by every pipeline so one frame bind group
	// serves all draws.
	if p.frameLayout, err = uniformLayout(device, "Frame BGL", frameSize); err != nil {
		return p, err
	}
	if p.matLayout, err = uniformLayout(device, "Material BGL", materialSize); err != nil {
		return p, err
	}
	p.layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.frameLayout, p.matLayout},
	})
	if err != nil {
		return p, err
	}

	if p.opaque, err = p.create(device, "Opaque Pipeline", format, wgpu.PrimitiveTopologyTriangleList, nil, true); err != nil {
		return p, err
	}
	if p.transparent, err = p.create(device, "Transparent Pipeline", format, wgpu.PrimitiveTopologyTriangleList, alphaBlend, false); err != nil {
		return p, err
	}
	if p.points, err = p.create(device, "Points Pipeline", format, wgpu.PrimitiveTopologyPointList, nil, true); err != nil {
		return p, err
	}
	return p, nil
}

func (p *pipelines) create(device *wgpu.Device, label string, format wgpu.TextureFormat, topology wgpu.PrimitiveTopology, blend *wgpu.BlendState, depthWrite bool) (*wgpu.RenderPipeline, error) {
	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.layout,
		Vertex: wgpu.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: depthWrite,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func uniformLayout(device *wgpu.Device, label string, size uint64) (*wgpu.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	})
}

func (p *pipelines) release() {
	for _, rp := range []*wgpu.RenderPipeline{p.opaque, p.transparent, p.points} {
		if rp != nil {
			rp.Release()
		}
	}
	if p.layout != nil {
		p.layout.Release()
	}
	for _, l := range []*wgpu.BindGroupLayout{p.frameLayout, p.matLayout} {
		if l != nil {
			l.Release()
		}
	}
	if p.module != nil {
		p.module.Release()
	}
}
