// Package viewpattern 识别视图模板中的 ##tag## 占位符，并把它们替换为动态计算的
// HTML 片段（条目计数、视图/过滤器跳转菜单、快速搜索、批量操作按钮与分页条）。
//
// Resolver 按请求创建：持有视图的非拥有引用与显式的渲染上下文 Env，
// 一次 Replacements 调用内同步完成全部计算，不保存跨请求状态。
//
// 标签目录（catalogue）按 info、menu、userpref、action、paging 五组有序登记，
// 重复的标签在构建目录时即返回 ErrDuplicatePattern。
package viewpattern
