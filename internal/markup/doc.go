// Package markup 提供视图模式替换所需的宿主渲染原语：URL 构造器、HTML 标签写入器、
// 单选跳转下拉框、分页条与图标。
//
// 所有输出均为确定性的 HTML 片段字符串：属性按调用顺序输出，查询参数按插入顺序输出，
// 方便模板替换结果在测试中做精确比较。
package markup
